package present

import (
	"log/slog"

	"github.com/chazu/terrace/internal/logging"
	"github.com/chazu/terrace/pkg/mesh"
)

// Summary logs counts and bounds instead of writing geometry.
type Summary struct {
	log *slog.Logger
}

// NewSummary returns a presenter that logs at info level. nil uses a no-op logger.
func NewSummary(log *slog.Logger) *Summary {
	return &Summary{log: logging.OrNop(log)}
}

func (p *Summary) Present(m *mesh.Mesh, mode ShadingMode) error {
	if err := check(m); err != nil {
		return err
	}
	attrs := []any{
		"name", m.Name,
		"vertices", m.VertexCount(),
		"faces", m.TriangleCount(),
		"watertight", m.Watertight(),
		"shading", mode.String(),
	}
	if min, max, ok := m.Bounds(); ok {
		attrs = append(attrs, "min", min, "max", max)
	}
	p.log.Info("mesh", attrs...)
	return nil
}
