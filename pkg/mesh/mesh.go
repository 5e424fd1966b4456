// Package mesh defines the indexed triangle mesh shared by the generators,
// the boolean kernels and the presenters.
package mesh

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Face is a triangle given as three indices into Mesh.Vertices.
type Face [3]uint32

// Mesh is an indexed triangle mesh. Topology is fixed once a generator or
// kernel returns it; only vertex positions change afterwards (see Translate).
type Mesh struct {
	Vertices []vec3.T `json:"vertices"`
	Faces    []Face   `json:"faces"`
	Name     string   `json:"name,omitempty"` // label carried through to presenters
}

// New returns an empty mesh with room for the given number of vertices and faces.
func New(vertices, faces int) *Mesh {
	return &Mesh{
		Vertices: make([]vec3.T, 0, vertices),
		Faces:    make([]Face, 0, faces),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Faces) == 0
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]vec3.T, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
		Name:     m.Name,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	return c
}

// Validate checks that every face index refers to an existing vertex.
func (m *Mesh) Validate() error {
	n := uint32(len(m.Vertices))
	for fi, f := range m.Faces {
		for k, idx := range f {
			if idx >= n {
				return fmt.Errorf("mesh: face %d corner %d: index %d out of range (%d vertices)", fi, k, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertices.
// ok is false for a mesh without vertices.
func (m *Mesh) Bounds() (min, max vec3.T, ok bool) {
	if len(m.Vertices) == 0 {
		return min, max, false
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max, true
}

// Triangle returns the three corner positions of face i.
func (m *Mesh) Triangle(i int) [3]vec3.T {
	f := m.Faces[i]
	return [3]vec3.T{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Triangles expands the mesh into a triangle soup.
func (m *Mesh) Triangles() [][3]vec3.T {
	tris := make([][3]vec3.T, len(m.Faces))
	for i := range m.Faces {
		tris[i] = m.Triangle(i)
	}
	return tris
}

// Append adds the geometry of other to m, offsetting its indices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, Face{f[0] + base, f[1] + base, f[2] + base})
	}
}
