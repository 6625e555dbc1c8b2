package poster

import (
	"context"
	"flag"
	"fmt"
	"math"
)

const (
	fullcircle = 360.0
	halfcircle = 180.0
	deg2rad    = math.Pi / halfcircle
)

// Drawer is a poster layout. Poster.Draw calls DrawBackground before the
// header and footer, and Draw for the track area.
type Drawer interface {
	Name() string
	RegisterFlags(*flag.FlagSet)
	Validate() error
	Draw(ctx context.Context, c Canvas, p *Poster, size, offset XY) error
	DrawBackground(ctx context.Context, c Canvas, p *Poster, size, offset XY) error
}

// TrackColor picks the colour of a track from its length relative to rg.
func TrackColor(colors Colors, rg Range[Distance], length Distance, special bool) (string, error) {
	ratio, err := rg.RelativePosition(length)
	if err != nil {
		return "", err
	}
	c1, c2 := colors.Gradient(special)
	return InterpolateColor(c1, c2, ratio)
}

func GetDrawer(name string) (Drawer, error) {
	switch name {
	case "clock":
		return NewClockDrawer(), nil
	case "heatmap":
		return NewHeatmapDrawer(), nil
	default:
		return nil, fmt.Errorf("%w: %s: unrecognized poster type", ErrInvalidParameter, name)
	}
}

// yearCells lays years out on a grid over size and calls fn with the
// offset and size of each year cell.
func yearCells(years []int, size, offset XY, fn func(year int, size, offset XY) error) error {
	grid, err := ComputeGrid(len(years), size)
	if err != nil {
		return err
	}
	var (
		cell   = grid.Cell(size)
		margin = NewXY(4, 4)
	)
	if grid.Cols <= 1 {
		margin.X = 0
	}
	if grid.Rows <= 1 {
		margin.Y = 0
	}
	sub := cell.Sub(margin.MulN(2))
	for i, year := range years {
		pos := offset.Add(margin).Add(cell.Mul(grid.Position(i)))
		if err := fn(year, sub, pos); err != nil {
			return err
		}
	}
	return nil
}
