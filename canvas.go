package poster

import (
	"image"
	"math"
)

// Canvas is the rendering sink a poster is drawn on. Coordinates are in
// poster units (millimetres) with the origin at the top left corner.
type Canvas interface {
	Open(size XY) error
	Close() error

	Group(id string)
	GroupEnd()

	Rect(pos, size XY, fill string)
	Text(pos XY, str string, font Font)
	Circle(center XY, radius float64, stroke Stroke)
	Polyline(points []XY, stroke Stroke)
	Arc(arc Arc, stroke Stroke)
	Image(pos, size XY, img image.Image) error
}

type Stroke struct {
	Color   string
	Width   float64
	Opacity float64
	Round   bool

	Title   string
	Animate *Animation
}

func NewStroke(color string, width float64) Stroke {
	return Stroke{
		Color:   color,
		Width:   width,
		Opacity: 1,
	}
}

type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

type Font struct {
	Family  string
	Size    float64
	Bold    bool
	Color   string
	Anchor  Anchor
	Central bool
}

const DefaultFamily = "Arial"

func NewFont(size float64, color string) Font {
	return Font{
		Family: DefaultFamily,
		Size:   size,
		Color:  color,
	}
}

// Animation describes an opacity keyframe animation attached to a shape.
type Animation struct {
	Attribute string
	Duration  float64
	Values    []string
	KeyTimes  []string
}

// Arc is a circle segment running clockwise from Start to End. Angles are
// clock angles in degrees: 0 at twelve o'clock, 90 at three o'clock.
type Arc struct {
	Center XY
	Radius float64
	Start  float64
	End    float64
}

func (a Arc) From() XY {
	return a.pointAt(a.Start)
}

func (a Arc) To() XY {
	return a.pointAt(a.End)
}

// Sweep is the clockwise angle covered by the arc, in [0, 360).
func (a Arc) Sweep() float64 {
	sweep := math.Mod(a.End-a.Start, fullcircle)
	if sweep < 0 {
		sweep += fullcircle
	}
	return sweep
}

func (a Arc) Large() bool {
	return a.Sweep() > halfcircle
}

func (a Arc) pointAt(angle float64) XY {
	rad := angle * deg2rad
	return NewXY(a.Center.X+a.Radius*math.Sin(rad), a.Center.Y-a.Radius*math.Cos(rad))
}
