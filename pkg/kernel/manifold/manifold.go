//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold computes
// exact, guaranteed-manifold mesh booleans.
//
// This package requires the Manifold C library (manifoldc) to be installed.
// Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/chazu/terrace/pkg/kernel"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*ManifoldKernel)(nil)

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New creates a new ManifoldKernel.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// Boolean combines a and b. Inputs Manifold rejects (open, self-intersecting,
// bad indices) are reported as *kernel.GeometryError.
func (k *ManifoldKernel) Boolean(op kernel.Op, a, b *mesh.Mesh) (*mesh.Mesh, error) {
	if err := kernel.CheckOperand(op, "a", a); err != nil {
		return nil, err
	}
	if err := kernel.CheckOperand(op, "b", b); err != nil {
		return nil, err
	}

	ma, err := toManifold(op, "a", a)
	if err != nil {
		return nil, err
	}
	defer C.manifold_delete_manifold(ma)
	mb, err := toManifold(op, "b", b)
	if err != nil {
		return nil, err
	}
	defer C.manifold_delete_manifold(mb)

	alloc := C.manifold_alloc_manifold()
	var res *C.ManifoldManifold
	switch op {
	case kernel.OpUnion:
		res = C.manifold_union(unsafe.Pointer(alloc), ma, mb)
	case kernel.OpDifference:
		res = C.manifold_difference(unsafe.Pointer(alloc), ma, mb)
	case kernel.OpIntersection:
		res = C.manifold_intersection(unsafe.Pointer(alloc), ma, mb)
	default:
		C.free(unsafe.Pointer(alloc))
		return nil, &kernel.GeometryError{Op: op, Reason: "unsupported operation"}
	}
	defer C.manifold_delete_manifold(res)

	if status := C.manifold_status(res); status != C.MANIFOLD_NO_ERROR {
		return nil, &kernel.GeometryError{Op: op, Reason: fmt.Sprintf("manifold status %d", int(status))}
	}

	out, err := fromManifold(res)
	if err != nil {
		return nil, err
	}
	if out.IsEmpty() {
		return nil, &kernel.GeometryError{Op: op, Reason: "result is empty"}
	}
	return out, nil
}

// toManifold uploads a mesh as MeshGL (positions only) and builds a manifold.
func toManifold(op kernel.Op, which string, m *mesh.Mesh) (*C.ManifoldManifold, error) {
	props := make([]float32, 0, m.VertexCount()*3)
	for _, v := range m.Vertices {
		props = append(props, float32(v[0]), float32(v[1]), float32(v[2]))
	}
	tris := make([]uint32, 0, m.TriangleCount()*3)
	for _, f := range m.Faces {
		tris = append(tris, f[0], f[1], f[2])
	}

	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_meshgl(unsafe.Pointer(meshAlloc),
		(*C.float)(unsafe.Pointer(&props[0])), C.size_t(m.VertexCount()), C.size_t(3),
		(*C.uint32_t)(unsafe.Pointer(&tris[0])), C.size_t(m.TriangleCount()),
	)
	defer C.manifold_delete_meshgl(meshGL)

	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_of_meshgl(unsafe.Pointer(alloc), meshGL)
	if status := C.manifold_status(ptr); status != C.MANIFOLD_NO_ERROR {
		C.manifold_delete_manifold(ptr)
		return nil, &kernel.GeometryError{
			Op:     op,
			Reason: fmt.Sprintf("operand %s rejected by manifold (status %d)", which, int(status)),
		}
	}
	return ptr, nil
}

// fromManifold extracts positions and triangles from Manifold's MeshGL.
// Properties past the first three (position) are ignored.
func fromManifold(ptr *C.ManifoldManifold) (*mesh.Mesh, error) {
	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(unsafe.Pointer(meshAlloc), ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return &mesh.Mesh{}, nil
	}
	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	if numProp < 3 {
		return nil, fmt.Errorf("manifold: mesh has %d vertex properties, need at least 3", numProp)
	}

	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)
	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	out := mesh.New(numVert, numTri)
	for i := 0; i < numVert; i++ {
		base := i * numProp
		out.Vertices = append(out.Vertices, vec3.T{
			float64(propData[base+0]),
			float64(propData[base+1]),
			float64(propData[base+2]),
		})
	}
	for t := 0; t < numTri; t++ {
		out.Faces = append(out.Faces, mesh.Face{indices[t*3], indices[t*3+1], indices[t*3+2]})
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("manifold: %w", err)
	}
	return out, nil
}
