package poster

import "fmt"

// Grid splits a canvas into Cols x Rows square cells of side Size.
type Grid struct {
	Cols int
	Rows int
	Size float64
}

// ComputeGrid finds the partition of dim into at least count cells wasting
// the least area.
func ComputeGrid(count int, dim XY) (Grid, error) {
	var (
		best  Grid
		waste float64
		found bool
	)
	for cols := 1; cols <= count; cols++ {
		sx := dim.X / float64(cols)
		for rows := 1; rows <= count; rows++ {
			if cols*rows < count {
				continue
			}
			var (
				sy   = dim.Y / float64(rows)
				size = min(sx, sy)
				w    = dim.X*dim.Y - float64(count)*size*size
			)
			if w < 0 {
				continue
			}
			if !found || w < waste {
				best = Grid{Cols: cols, Rows: rows, Size: size}
				waste = w
				found = true
			}
		}
	}
	if !found {
		return best, fmt.Errorf("%w: %d cells in %s", ErrUngriddable, count, dim)
	}
	return best, nil
}

// Cell returns the size of one cell when the canvas is stretched over the
// grid.
func (g Grid) Cell(dim XY) XY {
	return dim.Mul(NewXY(1/float64(g.Cols), 1/float64(g.Rows)))
}

// Position gives the column and row of the i-th cell in row-major order.
func (g Grid) Position(i int) XY {
	return NewXY(float64(i%g.Cols), float64(i/g.Cols))
}
