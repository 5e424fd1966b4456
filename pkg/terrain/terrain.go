// Package terrain generates stepped terrain: a grid of flat square
// plateaus, each at its own random elevation.
package terrain

import (
	"math"
	"math/rand/v2"

	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/primitive"
	"github.com/ungerik/go3d/float64/vec3"
)

// MinElevation is the lowest elevation a cell can be given.
const MinElevation = 0.1

// Params configures the terrain generators.
type Params struct {
	Width     float64 // plane extent along X
	Height    float64 // plane extent along Y
	StepSize  float64 // cell edge length, must be > 0
	MaxHeight float64 // exclusive upper bound of cell elevation

	// Seed drives the default PCG source when Rand is nil. The same Seed
	// always produces the same terrain.
	Seed uint64
	// Rand, when set, is used instead of a generator derived from Seed.
	Rand *rand.Rand
}

// Grid returns the cell layout described by p.
func (p Params) Grid() Grid {
	return NewGrid(p.Width, p.Height, p.StepSize)
}

func (p Params) source() *rand.Rand {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
}

// Elevations draws one elevation per cell, indexed by Grid.Cell, uniformly
// from [MinElevation, MaxHeight). When MaxHeight <= MinElevation every cell
// gets MinElevation.
func Elevations(p Params) []float64 {
	g := p.Grid()
	out := make([]float64, g.Cells())
	if len(out) == 0 {
		return out
	}
	if !(p.MaxHeight > MinElevation) {
		for i := range out {
			out[i] = MinElevation
		}
		return out
	}
	r := p.source()
	span := p.MaxHeight - MinElevation
	for i := range out {
		h := MinElevation + r.Float64()*span
		if h >= p.MaxHeight {
			h = math.Nextafter(p.MaxHeight, MinElevation)
		}
		out[i] = h
	}
	return out
}

// Steps builds the stepped surface. Every cell owns four vertices at its own
// elevation and two upward-facing triangles; no vertex is shared between
// neighbouring cells. The result has 4 vertices and 2 faces per cell and is
// empty when the plane holds no whole cell.
func Steps(p Params) *mesh.Mesh {
	g := p.Grid()
	elevation := Elevations(p)

	m := &mesh.Mesh{
		Vertices: make([]vec3.T, 4*g.Cells()),
		Faces:    make([]mesh.Face, 2*g.Cells()),
	}
	for i := 0; i < g.Cols; i++ {
		for j := 0; j < g.Rows; j++ {
			c := g.Cell(i, j)
			h := elevation[c]
			x0, y0 := g.Origin(i, j)
			x1, y1 := g.Origin(i+1, j+1)

			v := 4 * c
			m.Vertices[v+0] = vec3.T{x0, y0, h}
			m.Vertices[v+1] = vec3.T{x1, y0, h}
			m.Vertices[v+2] = vec3.T{x0, y1, h}
			m.Vertices[v+3] = vec3.T{x1, y1, h}

			base := uint32(v)
			m.Faces[2*c+0] = mesh.Face{base, base + 1, base + 2}
			m.Faces[2*c+1] = mesh.Face{base + 1, base + 3, base + 2}
		}
	}
	return m
}

// Columns builds the same terrain as Steps but closes every cell into a box
// standing on z=0, so each column is watertight and usable by the boolean
// kernels. The result has 8 vertices and 12 faces per cell.
func Columns(p Params) *mesh.Mesh {
	g := p.Grid()
	elevation := Elevations(p)

	m := mesh.New(8*g.Cells(), 12*g.Cells())
	for i := 0; i < g.Cols; i++ {
		for j := 0; j < g.Rows; j++ {
			col := primitive.Box(g.Step, g.Step, elevation[g.Cell(i, j)])
			x, y := g.Origin(i, j)
			mesh.Translate(col, vec3.T{x, y, 0})
			m.Append(col)
		}
	}
	return m
}
