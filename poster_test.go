package poster

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/geo/s2"
	"golang.org/x/text/language"
)

func makeTrack(start time.Time, length Distance, points ...s2.LatLng) *Track {
	if len(points) == 0 {
		points = []s2.LatLng{
			s2.LatLngFromDegrees(45, 7),
			s2.LatLngFromDegrees(45.1, 7.1),
			s2.LatLngFromDegrees(45.2, 7.05),
		}
	}
	return &Track{
		Files:     []string{start.Format("20060102150405") + ".gpx"},
		Polylines: [][]s2.LatLng{points},
		Start:     start,
		End:       start.Add(time.Hour),
		Length:    length,
	}
}

func sampleTracks() []*Track {
	return []*Track{
		makeTrack(time.Date(2020, 3, 1, 8, 0, 0, 0, time.UTC), 1000),
		makeTrack(time.Date(2020, 3, 1, 18, 0, 0, 0, time.UTC), 2000),
		makeTrack(time.Date(2020, 3, 9, 7, 0, 0, 0, time.UTC), 500),
		makeTrack(time.Date(2021, 7, 14, 9, 30, 0, 0, time.UTC), 4000),
	}
}

func TestPoster_SetTracks(t *testing.T) {
	p := New()
	p.SetTracks(sampleTracks())

	if got := p.Years(); got != (YearRange{From: 2020, To: 2021}) {
		t.Errorf("years mismatched! got %s", got)
	}
	if n := len(p.TracksOn("2020-03-01")); n != 2 {
		t.Errorf("tracks on date mismatched! want 2, got %d", n)
	}
	if n := p.DatesIn(2020); n != 2 {
		t.Errorf("dates in 2020 mismatched! want 2, got %d", n)
	}
	var (
		byDate  = p.LengthRangeByDate()
		byTrack = p.LengthRange()
	)
	if byDate.Lower() != 500 || byDate.Upper() != 4000 {
		t.Errorf("length by date mismatched! got %s", byDate)
	}
	if byTrack.Lower() != 500 || byTrack.Upper() != 4000 {
		t.Errorf("length by track mismatched! got %s", byTrack)
	}

	p.SetTracks(sampleTracks()[:2])
	if got := p.LengthRangeByDate(); got.Lower() != 3000 || got.Upper() != 3000 {
		t.Errorf("tracks of the same date should be summed, got %s", got)
	}
}

func TestPoster_Statistics(t *testing.T) {
	p := New()
	p.SetTracks(sampleTracks())

	stats := p.Statistics()
	if stats.Count != 4 {
		t.Errorf("count mismatched! want 4, got %d", stats.Count)
	}
	if stats.Total != 7500 {
		t.Errorf("total mismatched! want 7500, got %v", stats.Total)
	}
	if stats.Average != 1875 {
		t.Errorf("average mismatched! want 1875, got %v", stats.Average)
	}
	if stats.Min() != 500 || stats.Max() != 4000 {
		t.Errorf("min/max mismatched! got %v/%v", stats.Min(), stats.Max())
	}
	if stats.Weeks != 3 {
		t.Errorf("weeks mismatched! want 3, got %d", stats.Weeks)
	}
	if stats.Weekly() != 4.0/3 {
		t.Errorf("weekly mismatched! got %v", stats.Weekly())
	}
	if stats.PerYear[2020] != 3500 || stats.PerYear[2021] != 4000 {
		t.Errorf("per year mismatched! got %v", stats.PerYear)
	}
}

func TestPoster_DrawEmpty(t *testing.T) {
	var (
		p = New()
		c recordCanvas
	)
	if err := p.Draw(context.Background(), &c, NewClockDrawer()); !errors.Is(err, ErrNoTracks) {
		t.Errorf("expected ErrNoTracks, got %v", err)
	}
	if c.opened {
		t.Errorf("canvas should not be opened without tracks")
	}
}

func TestPoster_DrawClock(t *testing.T) {
	var (
		p = New()
		c recordCanvas
		d = NewClockDrawer()
	)
	p.Title = "My Poster"
	p.Athlete = "Somebody"
	p.WithAnimation = true
	p.SetTracks(sampleTracks())

	if err := p.Draw(context.Background(), &c, d); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !c.opened || !c.closed {
		t.Errorf("canvas should be opened and closed")
	}
	if c.depth != 0 {
		t.Errorf("unbalanced groups: %d", c.depth)
	}
	for _, id := range []string{"background", "header", "footer", "tracks", "year2020", "year2021"} {
		if !c.hasGroup(id) {
			t.Errorf("group %s missing", id)
		}
	}
	if len(c.arcs) != 3 {
		t.Fatalf("arcs mismatched! want 3, got %d", len(c.arcs))
	}
	first := c.arcs[0]
	if first.Title != "2020-03-01 3.0 km" {
		t.Errorf("title mismatched! got %q", first.Title)
	}
	if first.Animate == nil || len(first.Animate.KeyTimes) != 3 || first.Animate.Values[0] != "0" {
		t.Errorf("animation mismatched! got %+v", first.Animate)
	}
	if c.circles != 4 {
		t.Errorf("circles mismatched! want 4, got %d", c.circles)
	}
	for _, str := range []string{"My Poster", "Somebody", "2020", "2021", "ATHLETE", "Total: 7.5 km"} {
		if !c.hasText(str) {
			t.Errorf("text %q missing", str)
		}
	}
}

func TestPoster_DrawClockHours(t *testing.T) {
	var (
		p = New()
		c recordCanvas
		d = NewClockDrawer()
	)
	d.Hours = true
	p.SetTracks(sampleTracks()[3:])
	if err := p.Draw(context.Background(), &c, d); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// 4km: rings at 1, 2 and 3km plus inner and outer circles
	if c.circles != 5 {
		t.Errorf("circles mismatched! want 5, got %d", c.circles)
	}
}

type failingDrawer struct {
	ClockDrawer
}

var errDrawing = errors.New("drawing failed")

func (failingDrawer) Draw(_ context.Context, _ Canvas, _ *Poster, _, _ XY) error {
	return errDrawing
}

func TestPoster_DrawFailure(t *testing.T) {
	var (
		p = New()
		c recordCanvas
	)
	p.SetTracks(sampleTracks())
	err := p.Draw(context.Background(), &c, &failingDrawer{})
	if !errors.Is(err, errDrawing) {
		t.Errorf("expected drawing error, got %v", err)
	}
	if !c.opened || !c.closed {
		t.Errorf("canvas should be closed after a failure")
	}
	if c.depth != 0 {
		t.Errorf("unbalanced groups: %d", c.depth)
	}
}

func TestPoster_YearBoundary(t *testing.T) {
	var (
		p      = New()
		c      recordCanvas
		across = makeTrack(time.Date(2020, 12, 31, 23, 30, 0, 0, time.UTC), 1000)
		after  = makeTrack(time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC), 2000)
	)
	p.SetTracks([]*Track{across, after})

	if got := p.Years(); got != (YearRange{From: 2020, To: 2021}) {
		t.Errorf("years mismatched! got %s", got)
	}
	if n := p.DatesIn(2020); n != 1 {
		t.Errorf("dates in 2020 mismatched! want 1, got %d", n)
	}
	if n := p.DatesIn(2021); n != 1 {
		t.Errorf("dates in 2021 mismatched! want 1, got %d", n)
	}
	if got := p.TracksOn("2020-12-31"); len(got) != 1 || got[0] != across {
		t.Errorf("track should belong to the date it starts on")
	}
	if got := p.TracksOn("2021-01-01"); len(got) != 1 || got[0] != after {
		t.Errorf("only the track started on 2021-01-01 expected, got %d", len(got))
	}

	arc := Arc{Start: ClockAngle(across.Start), End: ClockAngle(across.End)}
	if math.Abs(arc.Start-345) > 1e-9 || math.Abs(arc.End-15) > 1e-9 {
		t.Errorf("angles mismatched! got %f -> %f", arc.Start, arc.End)
	}
	if math.Abs(arc.Sweep()-30) > 1e-9 || arc.Large() {
		t.Errorf("sweep mismatched! got %f (large: %t)", arc.Sweep(), arc.Large())
	}

	if err := p.Draw(context.Background(), &c, NewClockDrawer()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(c.arcs) != 2 || c.arcs[0].Title != "2020-12-31 1.0 km" {
		t.Errorf("arcs mismatched! got %+v", c.arcs)
	}
	for _, id := range []string{"year2020", "year2021"} {
		if !c.hasGroup(id) {
			t.Errorf("group %s missing", id)
		}
	}
}

func TestPoster_Language(t *testing.T) {
	p := New()
	p.SetLanguage(language.German)
	if got := p.Translate("STATISTICS"); got != "STATISTIK" {
		t.Errorf("translation mismatched! got %s", got)
	}
	if got := p.MonthName(time.March); got != "März" {
		t.Errorf("month mismatched! got %s", got)
	}
	if got := p.FormatDistance(1500); got != "1,5 km" {
		t.Errorf("distance mismatched! got %s", got)
	}
	p.SetLanguage(ParseLanguage("xx-invalid-"))
	if got := p.Translate("STATISTICS"); got != "STATISTICS" {
		t.Errorf("unknown language should fall back to english, got %s", got)
	}
}

func TestGetDrawer(t *testing.T) {
	for _, name := range []string{"clock", "heatmap"} {
		d, err := GetDrawer(name)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", name, err)
			continue
		}
		if d.Name() != name {
			t.Errorf("name mismatched! want %s, got %s", name, d.Name())
		}
	}
	if _, err := GetDrawer("circular"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
