package poster

import (
	"math"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

func bboxOf(lat1, lng1, lat2, lng2 float64) s2.Rect {
	return s2.RectFromLatLng(s2.LatLngFromDegrees(lat1, lng1)).AddPoint(s2.LatLngFromDegrees(lat2, lng2))
}

func TestProjection_Center(t *testing.T) {
	var (
		bbox = bboxOf(-10, -10, 10, 10)
		proj = NewProjection(bbox, NewXY(100, 100), NewXY(20, 30))
		got  = proj.Point(s2.LatLngFromDegrees(0, 0))
		want = NewXY(70, 80)
	)
	if !closeXY(got, want) {
		t.Errorf("center mismatched! want %s, got %s", want, got)
	}
}

func TestProjection_Orientation(t *testing.T) {
	var (
		bbox  = bboxOf(40, 5, 50, 15)
		proj  = NewProjection(bbox, NewXY(100, 100), NewXY(0, 0))
		south = proj.Point(s2.LatLngFromDegrees(40, 10))
		north = proj.Point(s2.LatLngFromDegrees(50, 10))
		west  = proj.Point(s2.LatLngFromDegrees(45, 5))
		east  = proj.Point(s2.LatLngFromDegrees(45, 15))
	)
	if north.Y >= south.Y {
		t.Errorf("north should be above south: %s / %s", north, south)
	}
	if west.X >= east.X {
		t.Errorf("west should be left of east: %s / %s", west, east)
	}
	for _, pt := range []XY{south, north, west, east} {
		if pt.X < -1e-9 || pt.X > 100+1e-9 || pt.Y < -1e-9 || pt.Y > 100+1e-9 {
			t.Errorf("%s outside of canvas", pt)
		}
	}
}

func TestProjection_Lines(t *testing.T) {
	var (
		bbox = bboxOf(-10, -10, 10, 10)
		line = []s2.LatLng{
			s2.LatLngFromDegrees(0, 0),
			s2.LatLngFromDegrees(1, 1),
			s2.LatLngFromDegrees(20, 20),
			s2.LatLngFromDegrees(2, 2),
			s2.LatLngFromDegrees(3, 3),
			s2.LatLngFromDegrees(4, 4),
		}
		outside = []s2.LatLng{
			s2.LatLngFromDegrees(30, 30),
			s2.LatLngFromDegrees(31, 31),
		}
	)
	lines := Project(bbox, NewXY(100, 100), NewXY(0, 0), [][]s2.LatLng{line, outside})
	if len(lines) != 2 {
		t.Fatalf("segments mismatched! want 2, got %d", len(lines))
	}
	if len(lines[0]) != 2 || len(lines[1]) != 3 {
		t.Errorf("points mismatched! want 2/3, got %d/%d", len(lines[0]), len(lines[1]))
	}
}

func TestProjection_Degenerate(t *testing.T) {
	var (
		ll   = s2.LatLngFromDegrees(45, 7)
		proj = NewProjection(s2.RectFromLatLng(ll), NewXY(100, 100), NewXY(0, 0))
	)
	if proj.Scale() != 0 {
		t.Errorf("scale of a point should be 0, got %v", proj.Scale())
	}
	if got := proj.Point(ll); !closeXY(got, NewXY(50, 50)) {
		t.Errorf("point should be at the center of the canvas, got %s", got)
	}
}

func TestComputeBoundsXY(t *testing.T) {
	rx, ry := ComputeBoundsXY([][]XY{
		{NewXY(1, 5), NewXY(3, 2)},
		{NewXY(-1, 7)},
	})
	if rx.Lower() != -1 || rx.Upper() != 3 || ry.Lower() != 2 || ry.Upper() != 7 {
		t.Errorf("bounds mismatched! got %s %s", rx, ry)
	}
}

func TestProjection_Antimeridian(t *testing.T) {
	bbox := s2.Rect{
		Lat: r1.Interval{Lo: (-10 * s1.Degree).Radians(), Hi: (10 * s1.Degree).Radians()},
		Lng: s1.IntervalFromEndpoints((170 * s1.Degree).Radians(), (-170 * s1.Degree).Radians()),
	}
	if !bbox.Lng.IsInverted() {
		t.Fatalf("longitude interval should be inverted")
	}
	proj := NewProjection(bbox, NewXY(100, 100), NewXY(0, 0))

	tests := []struct {
		Lng  float64
		Want float64
	}{
		{Lng: 170, Want: 0.2545},
		{Lng: 175, Want: 25.1272},
		{Lng: 180, Want: 50},
		{Lng: -175, Want: 74.8728},
		{Lng: -170, Want: 99.7455},
	}
	for _, tt := range tests {
		ll := s2.LatLngFromDegrees(0, tt.Lng)
		if !proj.Contains(ll) {
			t.Errorf("%.0f: should be inside bbox", tt.Lng)
		}
		got := proj.Point(ll)
		if math.Abs(got.X-tt.Want) > 1e-3 {
			t.Errorf("%.0f: x mismatched! want %.4f, got %.4f", tt.Lng, tt.Want, got.X)
		}
		if math.Abs(got.Y-50) > 1e-9 {
			t.Errorf("%.0f: y mismatched! want 50, got %.4f", tt.Lng, got.Y)
		}
	}
	if proj.Contains(s2.LatLngFromDegrees(0, 0)) {
		t.Errorf("0: should be outside bbox")
	}
}
