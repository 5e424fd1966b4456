package mesh

import "github.com/ungerik/go3d/float64/vec3"

// Translate moves every vertex of m by offset, in place.
func Translate(m *Mesh, offset vec3.T) {
	for i := range m.Vertices {
		m.Vertices[i].Add(&offset)
	}
}

// Translated returns a translated copy of m, leaving m untouched.
func Translated(m *Mesh, offset vec3.T) *Mesh {
	c := m.Clone()
	Translate(c, offset)
	return c
}
