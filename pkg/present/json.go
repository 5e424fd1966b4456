package present

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/terrace/pkg/mesh"
)

// colorPalette assigns distinct colors to successive meshes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// JSON writes one MeshData document per call to an io.Writer.
type JSON struct {
	w      io.Writer
	indent bool
	count  int
}

// NewJSON returns a JSON presenter writing to w.
func NewJSON(w io.Writer, indent bool) *JSON {
	return &JSON{w: w, indent: indent}
}

// Present encodes m. Successive calls cycle through the color palette.
func (p *JSON) Present(m *mesh.Mesh, mode ShadingMode) error {
	if err := check(m); err != nil {
		return err
	}
	d := NewMeshData(m, mode)
	d.Color = colorPalette[p.count%len(colorPalette)]
	p.count++

	enc := json.NewEncoder(p.w)
	if p.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("present: json: %w", err)
	}
	return nil
}
