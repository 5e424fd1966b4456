// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Each operand is turned into
// a signed distance field, the fields are combined, and the result is
// re-meshed with marching cubes, so output is accurate to about one cell.
package sdfx

import (
	"fmt"

	"github.com/chazu/terrace/pkg/kernel"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/deadsy/sdfx/obj"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/ungerik/go3d/float64/vec3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes resolution along the longest axis.
const DefaultMeshCells = 200

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a kernel that re-meshes with the given number of marching
// cubes cells along the longest axis. cells <= 0 uses DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Cells returns the marching cubes resolution.
func (k *SdfxKernel) Cells() int {
	return k.cells
}

// Boolean combines a and b. Both operands must be non-empty and watertight.
func (k *SdfxKernel) Boolean(op kernel.Op, a, b *mesh.Mesh) (*mesh.Mesh, error) {
	if err := kernel.CheckOperand(op, "a", a); err != nil {
		return nil, err
	}
	if err := kernel.CheckOperand(op, "b", b); err != nil {
		return nil, err
	}

	sa, err := toSDF(a)
	if err != nil {
		return nil, &kernel.GeometryError{Op: op, Reason: fmt.Sprintf("operand a: %v", err)}
	}
	sb, err := toSDF(b)
	if err != nil {
		return nil, &kernel.GeometryError{Op: op, Reason: fmt.Sprintf("operand b: %v", err)}
	}

	var s sdf.SDF3
	switch op {
	case kernel.OpUnion:
		s = sdf.Union3D(sa, sb)
	case kernel.OpDifference:
		s = sdf.Difference3D(sa, sb)
	case kernel.OpIntersection:
		s = sdf.Intersect3D(sa, sb)
	default:
		return nil, &kernel.GeometryError{Op: op, Reason: "unsupported operation"}
	}

	out := k.toMesh(s)
	if out.IsEmpty() {
		return nil, &kernel.GeometryError{Op: op, Reason: "result is empty"}
	}
	return out, nil
}

// toSDF converts a closed mesh into an sdf.SDF3 backed by an rtree of its
// triangles. Inside/outside comes from ray crossings, so m must be closed.
func toSDF(m *mesh.Mesh) (sdf.SDF3, error) {
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for _, t := range m.Triangles() {
		tris = append(tris, &sdf.Triangle3{toVec(t[0]), toVec(t[1]), toVec(t[2])})
	}
	return obj.ImportTriMesh(tris, 20, 3, 5), nil
}

// toMesh tessellates s with marching cubes and welds the triangle soup.
func (k *SdfxKernel) toMesh(s sdf.SDF3) *mesh.Mesh {
	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(s, renderer)

	soup := make([][3]vec3.T, 0, len(triangles))
	for _, tri := range triangles {
		soup = append(soup, [3]vec3.T{fromVec(tri[0]), fromVec(tri[1]), fromVec(tri[2])})
	}

	bb := s.BoundingBox()
	size := bb.Size()
	longest := size.X
	if size.Y > longest {
		longest = size.Y
	}
	if size.Z > longest {
		longest = size.Z
	}
	return mesh.FromTriangles(soup, 1e-4*longest/float64(k.cells))
}

func toVec(v vec3.T) v3.Vec {
	return v3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func fromVec(v v3.Vec) vec3.T {
	return vec3.T{v.X, v.Y, v.Z}
}
