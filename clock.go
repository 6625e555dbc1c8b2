package poster

import (
	"context"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/slices"
)

const halfDay = 12 * 60 * 60

// TimeInSeconds gives the seconds elapsed since the last midnight or noon,
// so that times twelve hours apart share the same position on a dial.
func TimeInSeconds(t time.Time) int {
	seconds := (t.Hour()*60+t.Minute())*60 + t.Second()
	return seconds % halfDay
}

// ClockAngle maps the time of day of t onto a 12 hour dial: 0 degrees at
// twelve o'clock, growing clockwise.
func ClockAngle(t time.Time) float64 {
	return float64(TimeInSeconds(t)) * (fullcircle / halfDay)
}

// KeyTimes returns n+1 key times evenly spread over [0, 1] for an
// animation running through n steps.
func KeyTimes(n int) []string {
	if n <= 0 {
		return []string{"0", "1"}
	}
	times := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		times = append(times, formatKeyTime(float64(i)/float64(n)))
	}
	return append(times, formatKeyTime(1))
}

// OpacityValues hides a shape for the first index key times and shows it
// for the remaining ones.
func OpacityValues(index, count int) []string {
	index = max(0, min(index, count))
	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if i < index {
			values = append(values, "0")
		} else {
			values = append(values, "1")
		}
	}
	return values
}

func formatKeyTime(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// ClockDrawer draws one dial per year. Each date with tracks becomes an
// arc from the start to the end time of its first track, its radius
// growing with the day of the year.
type ClockDrawer struct {
	Hours     bool
	HourColor string
}

func NewClockDrawer() *ClockDrawer {
	return &ClockDrawer{
		HourColor: "darkgrey",
	}
}

func (d *ClockDrawer) Name() string {
	return "clock"
}

func (d *ClockDrawer) RegisterFlags(set *flag.FlagSet) {
	set.BoolVar(&d.Hours, "clock-hours", d.Hours, "draw hour lines")
	set.StringVar(&d.HourColor, "clock-hour-color", d.HourColor, "color of hour lines")
}

func (d *ClockDrawer) Validate() error {
	if _, err := ParseColor(d.HourColor); err != nil {
		return fmt.Errorf("%w: clock hour color: %s", ErrInvalidParameter, err)
	}
	return nil
}

func (d *ClockDrawer) DrawBackground(_ context.Context, _ Canvas, _ *Poster, _, _ XY) error {
	return nil
}

func (d *ClockDrawer) Draw(_ context.Context, c Canvas, p *Poster, size, offset XY) error {
	if len(p.Tracks()) == 0 {
		return ErrNoTracks
	}
	if !p.LengthRangeByDate().IsValid() {
		return nil
	}
	return yearCells(p.Years().Years(), size, offset, func(year int, size, offset XY) error {
		c.Group(fmt.Sprintf("year%d", year))
		defer c.GroupEnd()
		return d.drawYear(c, p, year, size, offset)
	})
}

func (d *ClockDrawer) drawYear(c Canvas, p *Poster, year int, size, offset XY) error {
	var (
		minSize = size.Min()
		outer   = 0.5*minSize - 6
		radii   = RangeFromPair(outer/6, outer)
		center  = offset.Add(size.MulN(0.5))
	)
	if d.Hours {
		if err := d.drawHours(c, p, center, radii); err != nil {
			return err
		}
	}
	font := NewFont(minSize*4/80, p.Colors.Text)
	font.Anchor = AnchorMiddle
	font.Central = true
	c.Text(center, strconv.Itoa(year), font)

	ring := d.ringStroke()
	c.Circle(center, radii.Lower(), ring)
	c.Circle(center, radii.Upper(), ring)

	var (
		date     = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		days     = date.AddDate(1, 0, 0).Sub(date).Hours() / 24
		step     = radii.Diameter() / days
		radius   = radii.Lower()
		index    = 1
		keyTimes = KeyTimes(p.DatesIn(year))
	)
	for ; date.Year() == year; date = date.AddDate(0, 0, 1) {
		tracks := p.TracksOn(date.Format("2006-01-02"))
		if len(tracks) > 0 {
			var anim *Animation
			if p.WithAnimation {
				anim = &Animation{
					Attribute: "opacity",
					Duration:  p.AnimationTime,
					Values:    OpacityValues(index, len(keyTimes)),
					KeyTimes:  keyTimes,
				}
			}
			if err := d.drawSegment(c, p, tracks, center, radius, anim); err != nil {
				return err
			}
			index++
		}
		radius += step
	}
	return nil
}

func (d *ClockDrawer) drawHours(c Canvas, p *Poster, center XY, radii Range[float64]) error {
	lengths := p.LengthRangeByDate()
	if !lengths.IsValid() {
		return nil
	}
	var (
		max      = lengths.Upper()
		hour, ok = HourDistance(p.Units, max)
		ring     = d.ringStroke()
	)
	if !ok {
		return nil
	}
	for dist := hour; dist < max; dist += hour {
		radius, err := radii.Interpolate(float64(dist / max))
		if err != nil {
			return err
		}
		c.Circle(center, radius, ring)
	}
	return nil
}

func (d *ClockDrawer) drawSegment(c Canvas, p *Poster, tracks []*Track, center XY, radius float64, anim *Animation) error {
	var (
		length  = sumLength(tracks)
		special = slices.Some(tracks, func(t *Track) bool {
			return t.Special
		})
	)
	color, err := TrackColor(p.Colors, p.LengthRangeByDate(), length, special)
	if err != nil {
		return err
	}
	var (
		first = slices.Fst(tracks)
		arc   = Arc{
			Center: center,
			Radius: radius,
			Start:  ClockAngle(first.Start),
			End:    ClockAngle(first.End),
		}
		stroke = NewStroke(color, 0.2)
	)
	stroke.Title = strings.Join([]string{first.Date(), p.FormatDistance(length)}, " ")
	stroke.Animate = anim
	c.Arc(arc, stroke)
	return nil
}

func (d *ClockDrawer) ringStroke() Stroke {
	s := NewStroke(d.HourColor, 0.3)
	s.Opacity = 0.2
	return s
}

// HourDistance picks the spacing of the hour rings: the largest of 1, 5,
// 10 and 50 units not above max, stopping early once max is at most five
// times the spacing.
func HourDistance(units Units, max Distance) (Distance, bool) {
	var (
		hour  Distance
		found bool
	)
	for _, n := range []float64{1, 5, 10, 50} {
		dist := units.Of(n)
		if max < dist {
			continue
		}
		hour, found = dist, true
		if max/dist <= 5 {
			break
		}
	}
	return hour, found
}
