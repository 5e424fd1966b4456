// Package present hands a finished mesh to an output: a binary STL file,
// a JSON render payload, or a log summary.
package present

import (
	"errors"
	"fmt"

	"github.com/chazu/terrace/pkg/mesh"
)

// ShadingMode selects how normals are assigned when a mesh is presented.
type ShadingMode int

const (
	// FaceBased gives every triangle its own flat normal.
	FaceBased ShadingMode = iota
	// VertexBased averages incident face normals at each vertex.
	VertexBased
)

func (s ShadingMode) String() string {
	switch s {
	case FaceBased:
		return "face"
	case VertexBased:
		return "vertex"
	}
	return fmt.Sprintf("ShadingMode(%d)", int(s))
}

// ParseShading accepts "face" or "vertex".
func ParseShading(s string) (ShadingMode, error) {
	switch s {
	case "face", "":
		return FaceBased, nil
	case "vertex":
		return VertexBased, nil
	}
	return 0, fmt.Errorf("present: unknown shading mode %q (want face or vertex)", s)
}

// Presenter delivers a mesh to some output.
type Presenter interface {
	Present(m *mesh.Mesh, mode ShadingMode) error
}

// ErrNilMesh is returned when asked to present nothing.
var ErrNilMesh = errors.New("present: nil mesh")

func check(m *mesh.Mesh) error {
	if m == nil {
		return ErrNilMesh
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
