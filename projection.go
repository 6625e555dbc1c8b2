package poster

import (
	"math"

	"github.com/golang/geo/s2"
)

// Lng2X maps a longitude in degrees to [0, 2].
func Lng2X(lng float64) float64 {
	return lng/180 + 1
}

// Lat2Y maps a latitude in degrees with the web mercator formula. North is
// up, so y decreases with latitude.
func Lat2Y(lat float64) float64 {
	return 0.5 - math.Log(math.Tan(math.Pi/4*(1+lat/90)))/math.Pi
}

func LatLng2XY(ll s2.LatLng) XY {
	return NewXY(Lng2X(ll.Lng.Degrees()), Lat2Y(ll.Lat.Degrees()))
}

// Projection maps geographic points inside a bounding box onto a canvas
// rectangle with a uniform scale, centering the box in the rectangle.
type Projection struct {
	bbox   s2.Rect
	minX   float64
	offset XY
	scale  float64
}

func NewProjection(bbox s2.Rect, size, offset XY) Projection {
	var (
		minX = Lng2X(bbox.Lo().Lng.Degrees())
		dx   = Lng2X(bbox.Hi().Lng.Degrees()) - minX
		minY = Lat2Y(bbox.Lo().Lat.Degrees())
		maxY = Lat2Y(bbox.Hi().Lat.Degrees())
		dy   = math.Abs(maxY - minY)
	)
	if bbox.Lng.IsFull() {
		dx = 2
	} else {
		dx = wrapX(dx)
	}
	scale := projectionScale(size, dx, dy)
	half := size.Sub(NewXY(dx, -dy).MulN(scale)).MulN(0.5)
	return Projection{
		bbox:   bbox,
		minX:   minX,
		offset: offset.Add(half).Sub(NewXY(0, minY).MulN(scale)),
		scale:  scale,
	}
}

func (p Projection) Scale() float64 {
	return p.scale
}

func (p Projection) Contains(ll s2.LatLng) bool {
	return p.bbox.ContainsLatLng(ll.Normalized())
}

// Point projects ll without checking that it lies in the bounding box.
func (p Projection) Point(ll s2.LatLng) XY {
	ll = ll.Normalized()
	pt := LatLng2XY(ll)
	pt.X -= p.minX
	if p.bbox.Lng.IsInverted() {
		pt.X = wrapX(pt.X)
	}
	return p.offset.Add(pt.MulN(p.scale))
}

// Lines projects polylines. A point outside the bounding box ends the
// current segment; empty segments are dropped.
func (p Projection) Lines(lines [][]s2.LatLng) [][]XY {
	var all [][]XY
	for _, line := range lines {
		var seg []XY
		for _, ll := range line {
			if p.Contains(ll) {
				seg = append(seg, p.Point(ll))
				continue
			}
			if len(seg) > 0 {
				all = append(all, seg)
				seg = nil
			}
		}
		if len(seg) > 0 {
			all = append(all, seg)
		}
	}
	return all
}

// Project is a shortcut for NewProjection(bbox, size, offset).Lines(lines).
func Project(bbox s2.Rect, size, offset XY, lines [][]s2.LatLng) [][]XY {
	return NewProjection(bbox, size, offset).Lines(lines)
}

// ComputeBoundsXY returns the ranges covered by the x and y values of
// lines.
func ComputeBoundsXY(lines [][]XY) (Range[float64], Range[float64]) {
	var rx, ry Range[float64]
	for _, line := range lines {
		for _, pt := range line {
			rx.Extend(pt.X)
			ry.Extend(pt.Y)
		}
	}
	return rx, ry
}

func projectionScale(size XY, dx, dy float64) float64 {
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dy == 0:
		return size.X / dx
	case dx == 0:
		return size.Y / dy
	default:
		return math.Min(size.X/dx, size.Y/dy)
	}
}

func wrapX(dx float64) float64 {
	for dx >= 2 {
		dx -= 2
	}
	for dx < 0 {
		dx += 2
	}
	return dx
}
