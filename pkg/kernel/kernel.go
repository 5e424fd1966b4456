// Package kernel defines the abstract boolean geometry kernel interface.
// Implementations (sdfx, manifold) compute mesh booleans behind this
// interface so the rest of the system can swap backends or use a fake.
package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/terrace/pkg/mesh"
)

// Op selects the boolean operation.
type Op int

const (
	OpUnion Op = iota
	OpDifference
	OpIntersection
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// Kernel computes boolean operations on closed triangle meshes.
// Inputs are read-only; the result is always a new mesh.
type Kernel interface {
	Boolean(op Op, a, b *mesh.Mesh) (*mesh.Mesh, error)
}

// ErrUnavailable is returned by backends that were not compiled in.
var ErrUnavailable = errors.New("kernel not available")

// GeometryError reports that a kernel could not produce a valid result,
// usually because an input was empty, open or otherwise not boolean-valid.
type GeometryError struct {
	Op     Op
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("kernel: %s failed: %s", e.Op, e.Reason)
}

// CheckOperand verifies the preconditions most kernels share: the mesh is
// non-empty, its indices are valid and its surface is closed. which names
// the operand ("a" or "b") in the error.
func CheckOperand(op Op, which string, m *mesh.Mesh) error {
	if m == nil || m.IsEmpty() {
		return &GeometryError{Op: op, Reason: fmt.Sprintf("operand %s is empty", which)}
	}
	if err := m.Validate(); err != nil {
		return &GeometryError{Op: op, Reason: fmt.Sprintf("operand %s: %v", which, err)}
	}
	if !m.Watertight() {
		return &GeometryError{Op: op, Reason: fmt.Sprintf("operand %s is not watertight", which)}
	}
	return nil
}
