package poster

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

const earthRadius = 6378.1

// HeatmapDrawer draws every track projected on a common bounding box. Each
// segment is drawn three times with decreasing width and increasing
// opacity to give the glowing aspect of a heatmap.
type HeatmapDrawer struct {
	Center *s2.LatLng
	Radius float64

	TileURL string
	Tiles   TileProvider

	Logger *log.Logger

	center string
}

func NewHeatmapDrawer() *HeatmapDrawer {
	return &HeatmapDrawer{
		Logger: log.New(io.Discard, "", 0),
	}
}

func (d *HeatmapDrawer) Name() string {
	return "heatmap"
}

func (d *HeatmapDrawer) RegisterFlags(set *flag.FlagSet) {
	set.StringVar(&d.center, "heatmap-center", d.center, "center of the heatmap as LAT,LNG")
	set.Float64Var(&d.Radius, "heatmap-radius", d.Radius, "scale the heatmap so that a circle of radius km is visible")
	set.StringVar(&d.TileURL, "heatmap-tiles", d.TileURL, "tile server url template ({z}/{x}/{y}) for a background map")
}

// SetCenter parses str as a "LAT,LNG" pair.
func (d *HeatmapDrawer) SetCenter(str string) error {
	d.center = str
	d.Center = nil
	if str == "" {
		return nil
	}
	ll, err := ParseLatLng(str)
	if err != nil {
		return err
	}
	d.Center = &ll
	return nil
}

func (d *HeatmapDrawer) Validate() error {
	if d.center != "" && d.Center == nil {
		if err := d.SetCenter(d.center); err != nil {
			return err
		}
	}
	if d.Radius < 0 {
		return fmt.Errorf("%w: not a valid radius: %v (must be > 0)", ErrInvalidParameter, d.Radius)
	}
	if d.Radius > 0 && d.Center == nil {
		return fmt.Errorf("%w: heatmap radius needs a heatmap center", ErrInvalidParameter)
	}
	return nil
}

// ParseLatLng parses a "LAT,LNG" pair in degrees.
func ParseLatLng(str string) (s2.LatLng, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return s2.LatLng{}, fmt.Errorf("%w: not a valid LAT,LNG pair: %s", ErrInvalidParameter, str)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return s2.LatLng{}, fmt.Errorf("%w: not a valid LAT,LNG pair: %s", ErrInvalidParameter, str)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return s2.LatLng{}, fmt.Errorf("%w: not a valid LAT,LNG pair: %s", ErrInvalidParameter, str)
	}
	return s2.LatLngFromDegrees(lat, lng), nil
}

// BBox gives the area covered by the heatmap: the union of the bounding
// boxes of the tracks, or a box around the forced center.
func (d *HeatmapDrawer) BBox(p *Poster) s2.Rect {
	if d.Center == nil {
		bbox := s2.EmptyRect()
		for _, t := range p.Tracks() {
			bbox = bbox.Union(t.BBox())
		}
		return bbox
	}
	d.logger().Printf("Forcing heatmap center to %s", d.Center)
	var (
		center     = *d.Center
		dlat, dlng float64
	)
	if d.Radius > 0 {
		quarter := earthRadius * math.Pi / 2
		dlat = 90 * d.Radius / quarter
		dlng = dlat / math.Cos(center.Lat.Radians())
	} else {
		for _, t := range p.Tracks() {
			for _, line := range t.Polylines {
				for _, ll := range line {
					dlat = math.Max(dlat, math.Abs(center.Lat.Degrees()-ll.Lat.Degrees()))
					dlng = math.Max(dlng, lngDistance(center.Lng.Degrees(), ll.Lng.Degrees()))
				}
			}
		}
	}
	return s2.RectFromCenterSize(center, s2.LatLngFromDegrees(2*dlat, 2*dlng))
}

func (d *HeatmapDrawer) Draw(_ context.Context, c Canvas, p *Poster, size, offset XY) error {
	var (
		bbox   = d.BBox(p)
		proj   = NewProjection(bbox, size, offset)
		groups = make(map[int][]*Track)
		years  []int
	)
	for _, t := range p.Tracks() {
		year := t.Start.Year()
		if _, ok := groups[year]; !ok {
			years = append(years, year)
		}
		groups[year] = append(groups[year], t)
	}
	for _, year := range years {
		c.Group(fmt.Sprintf("year%d", year))
		for _, t := range groups[year] {
			if err := d.drawTrack(c, p, proj, t); err != nil {
				c.GroupEnd()
				return err
			}
		}
		c.GroupEnd()
	}
	return nil
}

var heatmapLayers = []struct {
	Opacity float64
	Width   float64
}{
	{Opacity: 0.1, Width: 5},
	{Opacity: 0.2, Width: 2},
	{Opacity: 1, Width: 0.3},
}

func (d *HeatmapDrawer) drawTrack(c Canvas, p *Poster, proj Projection, t *Track) error {
	color, err := TrackColor(p.Colors, p.LengthRange(), t.Length, t.Special)
	if err != nil {
		return err
	}
	for _, line := range proj.Lines(t.Polylines) {
		for _, layer := range heatmapLayers {
			stroke := NewStroke(color, layer.Width)
			stroke.Opacity = layer.Opacity
			stroke.Round = true
			c.Polyline(line, stroke)
		}
	}
	return nil
}

func (d *HeatmapDrawer) DrawBackground(ctx context.Context, c Canvas, p *Poster, size, offset XY) error {
	if d.Tiles == nil {
		return nil
	}
	size = size.Sub(NewXY(p.Horizontal(), p.Vertical()))
	offset = offset.Add(NewXY(p.Left, p.Top))

	bbox := d.BBox(p)
	width, height := MapImageSize(bbox, size, maxImageSize)
	if width <= 0 || height <= 0 {
		return nil
	}
	img, lo, hi, err := d.Tiles.Render(ctx, bbox, width, height)
	if err != nil {
		return err
	}
	frame := CropFrame(width, height, lo, hi)
	return c.Image(offset, size, CropImage(img, frame))
}

func (d *HeatmapDrawer) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

func lngDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	for d > 360 {
		d -= 360
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}
