package terrain

import "math"

// Grid is the cell layout of a terrain plane. Cells are numbered with the
// X index outer and the Y index inner: cell (i, j) is i*Rows + j.
type Grid struct {
	Cols int // cells along X
	Rows int // cells along Y
	Step float64
}

// NewGrid lays out floor(width/step) by floor(height/step) cells.
// A non-positive or non-finite step, or an extent smaller than one step,
// gives a grid with no cells.
func NewGrid(width, height, step float64) Grid {
	g := Grid{Step: step}
	if !(step > 0) || math.IsInf(step, 0) {
		return g
	}
	g.Cols = cellsAlong(width, step)
	g.Rows = cellsAlong(height, step)
	if g.Cols == 0 || g.Rows == 0 {
		g.Cols, g.Rows = 0, 0
	}
	return g
}

func cellsAlong(extent, step float64) int {
	n := math.Floor(extent / step)
	if !(n > 0) || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Cols * g.Rows
}

// Cell maps grid coordinates to the flat cell index.
func (g Grid) Cell(i, j int) int {
	return i*g.Rows + j
}

// Origin returns the minimum X and Y of cell (i, j).
func (g Grid) Origin(i, j int) (x, y float64) {
	return float64(i) * g.Step, float64(j) * g.Step
}
