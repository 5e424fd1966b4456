package present

import (
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// MeshData is the flat, JSON-serializable render payload.
type MeshData struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"`
	Color    string    `json:"color,omitempty"`
}

// VertexCount returns the number of vertices.
func (d MeshData) VertexCount() int {
	return len(d.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (d MeshData) TriangleCount() int {
	return len(d.Indices) / 3
}

// NewMeshData flattens m for rendering.
//
// FaceBased un-welds the mesh: each triangle gets three fresh vertices that
// all carry the face normal, so edges render hard. VertexBased keeps the
// shared vertices and smooths normals across them.
func NewMeshData(m *mesh.Mesh, mode ShadingMode) MeshData {
	d := MeshData{
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
		PartName: m.Name,
	}

	if mode == VertexBased {
		normals := m.VertexNormals()
		for i, v := range m.Vertices {
			d.Vertices = appendVec(d.Vertices, v)
			d.Normals = appendVec(d.Normals, normals[i])
		}
		for _, f := range m.Faces {
			d.Indices = append(d.Indices, f[0], f[1], f[2])
		}
		return d
	}

	for i := range m.Faces {
		n := m.FaceNormal(i)
		for _, v := range m.Triangle(i) {
			d.Indices = append(d.Indices, uint32(d.VertexCount()))
			d.Vertices = appendVec(d.Vertices, v)
			d.Normals = appendVec(d.Normals, n)
		}
	}
	return d
}

func appendVec(dst []float32, v vec3.T) []float32 {
	return append(dst, float32(v[0]), float32(v[1]), float32(v[2]))
}
