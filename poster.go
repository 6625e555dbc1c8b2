package poster

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

var DefaultPadding = Padding{
	Top:    30,
	Right:  10,
	Bottom: 30,
	Left:   10,
}

// Poster holds the tracks of one poster and the statistics derived from
// them. Sizes are in millimetres.
type Poster struct {
	Title   string
	Athlete string
	Width   float64
	Height  float64

	Padding

	Colors Colors
	Units  Units

	WithAnimation bool
	AnimationTime float64

	tracks       []*Track
	byDate       map[string][]*Track
	datesPerYear map[int]int
	years        YearRange
	lengths      Range[Distance]
	lengthByDate Range[Distance]

	language language.Tag
	printer  *message.Printer
}

func New() *Poster {
	p := Poster{
		Width:         200,
		Height:        300,
		Padding:       DefaultPadding,
		Colors:        DefaultColors(),
		Units:         Metric,
		AnimationTime: 30,
		byDate:        make(map[string][]*Track),
		datesPerYear:  make(map[int]int),
	}
	p.SetLanguage(language.English)
	return &p
}

func (p *Poster) Size() XY {
	return NewXY(p.Width, p.Height)
}

// SetTracks replaces the tracks of the poster and recomputes the per date
// grouping and the length ranges.
func (p *Poster) SetTracks(tracks []*Track) {
	p.tracks = tracks
	p.byDate = make(map[string][]*Track)
	p.datesPerYear = make(map[int]int)
	p.lengths.Clear()
	p.lengthByDate.Clear()

	p.years.Clear()
	for _, t := range tracks {
		p.years.Add(t.Start)
	}
	var dates []string
	for _, t := range tracks {
		if !p.years.Contains(t.Start) {
			continue
		}
		date := t.Date()
		if _, ok := p.byDate[date]; !ok {
			p.datesPerYear[t.Start.Year()]++
			dates = append(dates, date)
		}
		p.byDate[date] = append(p.byDate[date], t)
		p.lengths.Extend(t.Length)
	}
	for _, date := range dates {
		p.lengthByDate.Extend(sumLength(p.byDate[date]))
	}
}

func (p *Poster) Tracks() []*Track {
	return p.tracks
}

// TracksOn returns the tracks started on date (formatted as 2006-01-02).
func (p *Poster) TracksOn(date string) []*Track {
	return p.byDate[date]
}

func (p *Poster) Years() YearRange {
	return p.years
}

// DatesIn gives the number of distinct dates with tracks in year.
func (p *Poster) DatesIn(year int) int {
	return p.datesPerYear[year]
}

func (p *Poster) LengthRange() Range[Distance] {
	return p.lengths
}

func (p *Poster) LengthRangeByDate() Range[Distance] {
	return p.lengthByDate
}

// Draw renders the poster with d onto c. It opens and closes c, also when
// drawing fails.
func (p *Poster) Draw(ctx context.Context, c Canvas, d Drawer) error {
	if len(p.tracks) == 0 {
		return ErrNoTracks
	}
	if err := c.Open(p.Size()); err != nil {
		return err
	}
	if err := p.draw(ctx, c, d); err != nil {
		c.Close()
		return err
	}
	return c.Close()
}

func (p *Poster) draw(ctx context.Context, c Canvas, d Drawer) error {
	c.Rect(NewXY(0, 0), p.Size(), p.Colors.Background)

	c.Group("background")
	err := d.DrawBackground(ctx, c, p, p.Size(), NewXY(0, 0))
	c.GroupEnd()
	if err != nil {
		return fmt.Errorf("%s background: %w", d.Name(), err)
	}

	p.drawHeader(c)
	p.drawFooter(c)

	var (
		size   = NewXY(p.Width-p.Horizontal(), p.Height-p.Vertical())
		offset = NewXY(p.Left, p.Top)
	)
	c.Group("tracks")
	err = d.Draw(ctx, c, p, size, offset)
	c.GroupEnd()
	if err != nil {
		return fmt.Errorf("%s: %w", d.Name(), err)
	}
	return nil
}

func (p *Poster) drawHeader(c Canvas) {
	if p.Title == "" {
		return
	}
	c.Group("header")
	defer c.GroupEnd()

	font := NewFont(12, p.Colors.Text)
	font.Bold = true
	c.Text(NewXY(10, 20), p.Title, font)
}

func (p *Poster) drawFooter(c Canvas) {
	c.Group("footer")
	defer c.GroupEnd()

	var (
		stats  = p.Statistics()
		header = NewFont(4, p.Colors.Text)
		value  = NewFont(9, p.Colors.Text)
		small  = NewFont(3, p.Colors.Text)
		bottom = p.Height
	)
	c.Text(NewXY(10, bottom-20), p.Translate("ATHLETE"), header)
	c.Text(NewXY(10, bottom-10), p.Athlete, value)
	c.Text(NewXY(120, bottom-20), p.Translate("STATISTICS"), header)
	c.Text(NewXY(120, bottom-15), fmt.Sprintf("%s: %d", p.Translate("Number"), stats.Count), small)
	c.Text(NewXY(120, bottom-10), p.Translate("Weekly")+": "+p.FormatFloat(stats.Weekly()), small)
	c.Text(NewXY(141, bottom-15), p.Translate("Total")+": "+p.FormatDistance(stats.Total), small)
	c.Text(NewXY(141, bottom-10), p.Translate("Avg")+": "+p.FormatDistance(stats.Average), small)
	c.Text(NewXY(167, bottom-15), p.Translate("Min")+": "+p.FormatDistance(stats.Min()), small)
	c.Text(NewXY(167, bottom-10), p.Translate("Max")+": "+p.FormatDistance(stats.Max()), small)
}

func sumLength(tracks []*Track) Distance {
	var total Distance
	for _, t := range tracks {
		total += t.Length
	}
	return total
}
