package scene

import (
	"errors"
	"fmt"

	"github.com/chazu/terrace/pkg/combine"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/primitive"
	"github.com/chazu/terrace/pkg/terrain"
	"github.com/ungerik/go3d/float64/vec3"
)

// ErrNoCombiner is returned when a scene contains a union but Build was
// given no combiner.
var ErrNoCombiner = errors.New("scene: union requires a combiner")

// transformStack accumulates translations during tree traversal.
type transformStack struct {
	translations []vec3.T
}

func (ts *transformStack) push(v vec3.T) {
	ts.translations = append(ts.translations, v)
}

func (ts *transformStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
	}
}

// accumulated returns the sum of all translations on the stack.
func (ts *transformStack) accumulated() vec3.T {
	var sum vec3.T
	for i := range ts.translations {
		sum.Add(&ts.translations[i])
	}
	return sum
}

// Build walks the tree rooted at n and returns the resulting mesh.
// The combiner is only needed when the tree contains a Union.
func Build(n Node, c *combine.Combiner) (*mesh.Mesh, error) {
	if n == nil {
		return nil, errors.New("scene: nil node")
	}
	return walkNode(n, c, &transformStack{})
}

// walkNode recursively builds a node and its children.
func walkNode(n Node, c *combine.Combiner, ts *transformStack) (*mesh.Mesh, error) {
	switch n := n.(type) {
	case Box:
		return place(primitive.Box(n.Length, n.Width, n.Height), ts), nil
	case Steps:
		return place(terrain.Steps(n.Params), ts), nil
	case Columns:
		return place(terrain.Columns(n.Params), ts), nil
	case Translate:
		return handleTranslate(n, c, ts)
	case Union:
		return handleUnion(n, c, ts)
	case Named:
		return handleNamed(n, c, ts)
	case nil:
		return nil, errors.New("scene: nil child")
	default:
		return nil, fmt.Errorf("scene: unknown node kind %q (%T)", n.Kind(), n)
	}
}

// place applies the accumulated translation to a freshly generated leaf.
func place(m *mesh.Mesh, ts *transformStack) *mesh.Mesh {
	offset := ts.accumulated()
	if offset != vec3.Zero {
		mesh.Translate(m, offset)
	}
	return m
}

// handleTranslate pushes the offset, recurses into the child, then pops.
func handleTranslate(n Translate, c *combine.Combiner, ts *transformStack) (*mesh.Mesh, error) {
	ts.push(n.Offset)
	defer ts.pop()
	return walkNode(n.Child, c, ts)
}

// handleUnion builds every child, then folds them through the combiner.
func handleUnion(n Union, c *combine.Combiner, ts *transformStack) (*mesh.Mesh, error) {
	if len(n.Children) == 0 {
		return nil, errors.New("scene: union has no children")
	}
	parts := make([]*mesh.Mesh, 0, len(n.Children))
	for i, child := range n.Children {
		m, err := walkNode(child, c, ts)
		if err != nil {
			return nil, fmt.Errorf("union child %d: %w", i, err)
		}
		parts = append(parts, m)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	if c == nil {
		return nil, ErrNoCombiner
	}
	return c.UnionAll(parts...)
}

func handleNamed(n Named, c *combine.Combiner, ts *transformStack) (*mesh.Mesh, error) {
	m, err := walkNode(n.Child, c, ts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.Name, err)
	}
	m.Name = n.Name
	return m, nil
}
