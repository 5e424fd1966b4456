package scene_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/terrace/pkg/combine"
	"github.com/chazu/terrace/pkg/kernel"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/primitive"
	"github.com/chazu/terrace/pkg/scene"
	"github.com/chazu/terrace/pkg/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

// boundsKernel returns the box of the joint bounds of its operands.
type boundsKernel struct{}

func (boundsKernel) Boolean(op kernel.Op, a, b *mesh.Mesh) (*mesh.Mesh, error) {
	if err := kernel.CheckOperand(op, "a", a); err != nil {
		return nil, err
	}
	if err := kernel.CheckOperand(op, "b", b); err != nil {
		return nil, err
	}
	amin, amax, _ := a.Bounds()
	bmin, bmax, _ := b.Bounds()
	var min, max vec3.T
	for i := 0; i < 3; i++ {
		min[i] = math.Min(amin[i], bmin[i])
		max[i] = math.Max(amax[i], bmax[i])
	}
	size := vec3.Sub(&max, &min)
	out := primitive.Box(size[0], size[1], size[2])
	mesh.Translate(out, min)
	return out, nil
}

func newCombiner() *combine.Combiner {
	return combine.New(boundsKernel{}, nil)
}

func bounds(t *testing.T, m *mesh.Mesh) (vec3.T, vec3.T) {
	t.Helper()
	min, max, ok := m.Bounds()
	require.True(t, ok, "mesh has no vertices")
	return min, max
}

func TestSingleBox(t *testing.T) {
	m, err := scene.Build(scene.Box{Length: 2, Width: 3, Height: 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, m.VertexCount())
	min, max := bounds(t, m)
	assert.Equal(t, vec3.T{0, 0, 0}, min)
	assert.Equal(t, vec3.T{2, 3, 4}, max)
}

func TestNestedTranslationsAccumulate(t *testing.T) {
	tree := scene.Translate{
		Offset: vec3.T{10, 0, 0},
		Child: scene.Translate{
			Offset: vec3.T{0, 5, 1},
			Child:  scene.Box{Length: 1, Width: 1, Height: 1},
		},
	}
	m, err := scene.Build(tree, nil)
	require.NoError(t, err)
	min, max := bounds(t, m)
	assert.Equal(t, vec3.T{10, 5, 1}, min)
	assert.Equal(t, vec3.T{11, 6, 2}, max)
}

func TestTranslationScopedToSubtree(t *testing.T) {
	// The second union child sits outside the translate and stays at the origin.
	tree := scene.Union{Children: []scene.Node{
		scene.Translate{Offset: vec3.T{1, 0, 0}, Child: scene.Box{Length: 2, Width: 3, Height: 4}},
		scene.Box{Length: 2, Width: 3, Height: 4},
	}}
	m, err := scene.Build(tree, newCombiner())
	require.NoError(t, err)
	min, max := bounds(t, m)
	assert.Equal(t, vec3.T{0, 0, 0}, min)
	assert.Equal(t, vec3.T{3, 3, 4}, max)
}

func TestStepsLeaf(t *testing.T) {
	p := terrain.Params{Width: 2, Height: 2, StepSize: 1, MaxHeight: 0.4, Seed: 9}
	m, err := scene.Build(scene.Steps{Params: p}, nil)
	require.NoError(t, err)
	assert.Equal(t, terrain.Steps(p).Vertices, m.Vertices)
}

func TestColumnsLeafUnion(t *testing.T) {
	p := terrain.Params{Width: 2, Height: 2, StepSize: 1, MaxHeight: 0.4, Seed: 9}
	tree := scene.Union{Children: []scene.Node{
		scene.Columns{Params: p},
		scene.Box{Length: 2, Width: 2, Height: 0.05},
	}}
	m, err := scene.Build(tree, newCombiner())
	require.NoError(t, err)
	min, max := bounds(t, m)
	assert.Equal(t, 0.0, min[2])
	assert.Equal(t, 2.0, max[0])
	assert.Less(t, max[2], 0.4)
}

func TestUnionOfOpenStepsFails(t *testing.T) {
	tree := scene.Union{Children: []scene.Node{
		scene.Steps{Params: terrain.Params{Width: 2, Height: 2, StepSize: 1, MaxHeight: 0.4}},
		scene.Box{Length: 1, Width: 1, Height: 1},
	}}
	_, err := scene.Build(tree, newCombiner())
	require.Error(t, err)
	var ge *kernel.GeometryError
	assert.True(t, errors.As(err, &ge))
	assert.Contains(t, err.Error(), "union")
}

func TestUnionWithoutCombiner(t *testing.T) {
	tree := scene.Union{Children: []scene.Node{
		scene.Box{Length: 1, Width: 1, Height: 1},
		scene.Box{Length: 1, Width: 1, Height: 1},
	}}
	_, err := scene.Build(tree, nil)
	assert.ErrorIs(t, err, scene.ErrNoCombiner)
}

func TestSingleChildUnionNeedsNoCombiner(t *testing.T) {
	m, err := scene.Build(scene.Union{Children: []scene.Node{scene.Box{Length: 1, Width: 1, Height: 1}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, m.TriangleCount())
}

func TestEmptyUnion(t *testing.T) {
	_, err := scene.Build(scene.Union{}, newCombiner())
	assert.Error(t, err)
}

func TestNamed(t *testing.T) {
	m, err := scene.Build(scene.Named{Name: "plinth", Child: scene.Box{Length: 1, Width: 1, Height: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "plinth", m.Name)
}

func TestNilNodes(t *testing.T) {
	_, err := scene.Build(nil, nil)
	assert.Error(t, err)

	_, err = scene.Build(scene.Translate{Offset: vec3.T{1, 1, 1}}, nil)
	assert.Error(t, err)
}
