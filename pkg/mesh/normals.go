package mesh

import "github.com/ungerik/go3d/float64/vec3"

// FaceNormal returns the unit normal of face i following its winding.
// A zero-area face yields the zero vector.
func (m *Mesh) FaceNormal(i int) vec3.T {
	n := m.faceCross(i)
	if n.LengthSqr() < 1e-24 {
		return vec3.Zero
	}
	return *n.Normalize()
}

// faceCross is the unnormalized normal of face i; its length is twice the
// triangle area.
func (m *Mesh) faceCross(i int) vec3.T {
	t := m.Triangle(i)
	e1 := vec3.Sub(&t[1], &t[0])
	e2 := vec3.Sub(&t[2], &t[0])
	return vec3.Cross(&e1, &e2)
}

// VertexNormals returns one normal per vertex, the area-weighted average of
// the normals of all faces touching it. Vertices used by no face get the
// zero vector.
func (m *Mesh) VertexNormals() []vec3.T {
	normals := make([]vec3.T, len(m.Vertices))
	for i, f := range m.Faces {
		n := m.faceCross(i)
		for _, idx := range f {
			normals[idx].Add(&n)
		}
	}
	for i := range normals {
		if normals[i].LengthSqr() > 1e-24 {
			normals[i].Normalize()
		}
	}
	return normals
}
