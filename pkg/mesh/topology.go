package mesh

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// DefaultWeldTolerance is the distance under which FromTriangles treats two
// corners as the same vertex.
const DefaultWeldTolerance = 1e-6

// edge is a directed edge between two vertex indices.
type edge struct {
	from, to uint32
}

// Watertight reports whether every directed edge of the mesh is matched by
// exactly one edge running the opposite way. For a consistently wound mesh
// this means the surface is closed and every edge has exactly two faces.
func (m *Mesh) Watertight() bool {
	if len(m.Faces) == 0 {
		return false
	}
	edges := make(map[edge]int, len(m.Faces)*3)
	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			edges[edge{f[k], f[(k+1)%3]}]++
		}
	}
	for e, n := range edges {
		if n != 1 {
			return false
		}
		if edges[edge{e.to, e.from}] != 1 {
			return false
		}
	}
	return true
}

// weldKey quantizes a position onto a grid of side tol.
type weldKey [3]int64

func keyFor(v vec3.T, tol float64) weldKey {
	return weldKey{
		int64(math.Round(v[0] / tol)),
		int64(math.Round(v[1] / tol)),
		int64(math.Round(v[2] / tol)),
	}
}

// FromTriangles builds an indexed mesh from a triangle soup, merging corners
// closer than tol. Triangles that collapse after welding are dropped.
// A non-positive tol uses DefaultWeldTolerance.
func FromTriangles(tris [][3]vec3.T, tol float64) *Mesh {
	if tol <= 0 {
		tol = DefaultWeldTolerance
	}
	m := New(len(tris), len(tris))
	index := make(map[weldKey]uint32, len(tris))

	lookup := func(v vec3.T) uint32 {
		k := keyFor(v, tol)
		if i, ok := index[k]; ok {
			return i
		}
		i := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, v)
		index[k] = i
		return i
	}

	for _, t := range tris {
		f := Face{lookup(t[0]), lookup(t[1]), lookup(t[2])}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			continue
		}
		m.Faces = append(m.Faces, f)
	}
	return m
}
