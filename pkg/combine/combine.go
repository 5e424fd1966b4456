// Package combine merges meshes through a boolean geometry kernel.
package combine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chazu/terrace/internal/logging"
	"github.com/chazu/terrace/pkg/kernel"
	"github.com/chazu/terrace/pkg/mesh"
)

// ErrNoMeshes is returned by UnionAll when called without operands.
var ErrNoMeshes = errors.New("combine: no meshes to combine")

// Combiner produces boolean unions by delegating to a kernel. It never
// retries and never synthesizes a partial result: a kernel failure is
// returned to the caller as is, wrapped with context.
type Combiner struct {
	kernel kernel.Kernel
	log    *slog.Logger
}

// New returns a Combiner backed by k. A nil logger disables logging.
func New(k kernel.Kernel, log *slog.Logger) *Combiner {
	return &Combiner{kernel: k, log: logging.OrNop(log)}
}

// Union returns a new mesh enclosing the volumes of a and b.
// Neither input is modified.
func (c *Combiner) Union(a, b *mesh.Mesh) (*mesh.Mesh, error) {
	c.log.Debug("union",
		"a_vertices", vertexCount(a), "a_faces", faceCount(a),
		"b_vertices", vertexCount(b), "b_faces", faceCount(b),
	)
	out, err := c.kernel.Boolean(kernel.OpUnion, a, b)
	if err != nil {
		return nil, fmt.Errorf("combine: union: %w", err)
	}
	c.log.Debug("union done", "vertices", out.VertexCount(), "faces", out.TriangleCount())
	return out, nil
}

// UnionAll folds Union over meshes from left to right. A single mesh is
// returned as a copy.
func (c *Combiner) UnionAll(meshes ...*mesh.Mesh) (*mesh.Mesh, error) {
	if len(meshes) == 0 {
		return nil, ErrNoMeshes
	}
	acc := meshes[0].Clone()
	for i, m := range meshes[1:] {
		next, err := c.Union(acc, m)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i+1, err)
		}
		acc = next
	}
	return acc, nil
}

func vertexCount(m *mesh.Mesh) int {
	if m == nil {
		return 0
	}
	return m.VertexCount()
}

func faceCount(m *mesh.Mesh) int {
	if m == nil {
		return 0
	}
	return m.TriangleCount()
}
