package present

import (
	"fmt"

	"github.com/chazu/terrace/pkg/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// STL writes a binary STL file.
//
// STL stores one normal per facet, so both shading modes produce the same
// file. The mode is still checked so callers get the same errors everywhere.
type STL struct {
	Path string
}

// NewSTL returns an STL presenter writing to path.
func NewSTL(path string) *STL {
	return &STL{Path: path}
}

func (p *STL) Present(m *mesh.Mesh, mode ShadingMode) error {
	if err := check(m); err != nil {
		return err
	}
	if mode != FaceBased && mode != VertexBased {
		return fmt.Errorf("present: stl: unsupported shading %s", mode)
	}

	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for _, t := range m.Triangles() {
		tris = append(tris, &sdf.Triangle3{
			v3.Vec{X: t[0][0], Y: t[0][1], Z: t[0][2]},
			v3.Vec{X: t[1][0], Y: t[1][1], Z: t[1][2]},
			v3.Vec{X: t[2][0], Y: t[2][1], Z: t[2][2]},
		})
	}
	if err := render.SaveSTL(p.Path, tris); err != nil {
		return fmt.Errorf("present: stl: %w", err)
	}
	return nil
}
