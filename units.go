package poster

import (
	"fmt"
	"strings"
)

// Distance is a length in metres.
type Distance float64

const (
	Metre     Distance = 1
	Kilometre          = 1000 * Metre
	Mile               = 1609.344 * Metre
)

func (d Distance) Metres() float64 {
	return float64(d)
}

// Units selects how distances are displayed. Values are immutable and
// shared; pass them around instead of looking them up.
type Units struct {
	Name   string
	Symbol string
	Unit   Distance
}

var (
	Metric   = Units{Name: "metric", Symbol: "km", Unit: Kilometre}
	Imperial = Units{Name: "imperial", Symbol: "mi", Unit: Mile}
)

func UnitsFor(name string) (Units, error) {
	switch strings.ToLower(name) {
	case "metric", "":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return Units{}, fmt.Errorf("%w: %s: unknown unit system", ErrInvalidParameter, name)
	}
}

// Convert gives d expressed in the display unit.
func (u Units) Convert(d Distance) float64 {
	return float64(d / u.Unit)
}

// Of gives the distance of v display units.
func (u Units) Of(v float64) Distance {
	return Distance(v) * u.Unit
}
