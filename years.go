package poster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearRange is an inclusive range of calendar years. The zero value is
// empty.
type YearRange struct {
	From int
	To   int
}

// ParseYearRange accepts "all", "" (both empty), "YYYY" or "YYYY-YYYY".
func ParseYearRange(str string) (YearRange, error) {
	var yr YearRange
	str = strings.TrimSpace(str)
	if str == "" || str == "all" {
		return yr, nil
	}
	fst, lst, ok := strings.Cut(str, "-")
	if !ok {
		lst = fst
	}
	from, err := strconv.Atoi(strings.TrimSpace(fst))
	if err != nil {
		return yr, fmt.Errorf("%w: %s: invalid year range", ErrInvalidParameter, str)
	}
	to, err := strconv.Atoi(strings.TrimSpace(lst))
	if err != nil {
		return yr, fmt.Errorf("%w: %s: invalid year range", ErrInvalidParameter, str)
	}
	if from > to {
		return yr, fmt.Errorf("%w: %s: first year after last year", ErrInvalidParameter, str)
	}
	yr.From, yr.To = from, to
	return yr, nil
}

func (y YearRange) IsValid() bool {
	return y.From > 0 && y.To >= y.From
}

func (y *YearRange) Clear() {
	y.From, y.To = 0, 0
}

func (y *YearRange) Add(t time.Time) {
	year := t.Year()
	if !y.IsValid() {
		y.From, y.To = year, year
		return
	}
	y.From = min(y.From, year)
	y.To = max(y.To, year)
}

// Contains reports whether t falls in the range. An empty range contains
// every year.
func (y YearRange) Contains(t time.Time) bool {
	if !y.IsValid() {
		return true
	}
	year := t.Year()
	return y.From <= year && year <= y.To
}

func (y YearRange) Count() int {
	if !y.IsValid() {
		return 0
	}
	return y.To - y.From + 1
}

func (y YearRange) Years() []int {
	all := make([]int, 0, y.Count())
	for i := y.From; y.IsValid() && i <= y.To; i++ {
		all = append(all, i)
	}
	return all
}

func (y YearRange) String() string {
	if !y.IsValid() {
		return "all"
	}
	if y.From == y.To {
		return strconv.Itoa(y.From)
	}
	return fmt.Sprintf("%d-%d", y.From, y.To)
}
