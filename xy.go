package poster

import (
	"fmt"
	"math"
)

// XY is used for points, sizes and offsets on the canvas.
type XY struct {
	X float64
	Y float64
}

func NewXY(x, y float64) XY {
	return XY{
		X: x,
		Y: y,
	}
}

func (p XY) Add(o XY) XY {
	return NewXY(p.X+o.X, p.Y+o.Y)
}

func (p XY) AddN(n float64) XY {
	return NewXY(p.X+n, p.Y+n)
}

func (p XY) Sub(o XY) XY {
	return NewXY(p.X-o.X, p.Y-o.Y)
}

func (p XY) SubN(n float64) XY {
	return NewXY(p.X-n, p.Y-n)
}

func (p XY) Mul(o XY) XY {
	return NewXY(p.X*o.X, p.Y*o.Y)
}

func (p XY) MulN(n float64) XY {
	return NewXY(p.X*n, p.Y*n)
}

func (p XY) Div(o XY) XY {
	return NewXY(p.X/o.X, p.Y/o.Y)
}

func (p XY) DivN(n float64) XY {
	return NewXY(p.X/n, p.Y/n)
}

func (p XY) Equal(o XY) bool {
	return isClose(p.X, o.X) && isClose(p.Y, o.Y)
}

func (p XY) ToInt() XY {
	return NewXY(math.Trunc(p.X), math.Trunc(p.Y))
}

func (p XY) Round(digits int) XY {
	return NewXY(roundTo(p.X, digits), roundTo(p.Y, digits))
}

func (p XY) Max() float64 {
	return math.Max(p.X, p.Y)
}

func (p XY) Min() float64 {
	return math.Min(p.X, p.Y)
}

// ScaleToMax scales both components by the same factor so that the larger
// one becomes max. The zero vector stays zero.
func (p XY) ScaleToMax(max float64) XY {
	if p.X == 0 && p.Y == 0 {
		return XY{}
	}
	if p.X > p.Y {
		return NewXY(max, max/p.X*p.Y)
	}
	return NewXY(max/p.Y*p.X, max)
}

func (p XY) String() string {
	return fmt.Sprintf("XY: %v/%v", p.X, p.Y)
}

func isClose(a, b float64) bool {
	const (
		relTol = 1e-9
		absTol = 0
	)
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(relTol*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

func roundTo(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.RoundToEven(v*pow) / pow
}
