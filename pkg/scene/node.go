// Package scene describes a mesh as a tree of generators, transforms and
// unions, and builds that tree into a single mesh.
package scene

import (
	"github.com/chazu/terrace/pkg/terrain"
	"github.com/ungerik/go3d/float64/vec3"
)

// Node is an element of a scene tree.
type Node interface {
	Kind() string
}

// Box is a primitive.Box leaf.
type Box struct {
	Length, Width, Height float64
}

// Steps is a terrain.Steps leaf (open surface).
type Steps struct {
	Params terrain.Params
}

// Columns is a terrain.Columns leaf (closed columns).
type Columns struct {
	Params terrain.Params
}

// Translate offsets its child.
type Translate struct {
	Offset vec3.T
	Child  Node
}

// Union merges its children with the boolean kernel, left to right.
type Union struct {
	Children []Node
}

// Named labels the mesh built from its child.
type Named struct {
	Name  string
	Child Node
}

func (Box) Kind() string       { return "box" }
func (Steps) Kind() string     { return "steps" }
func (Columns) Kind() string   { return "columns" }
func (Translate) Kind() string { return "translate" }
func (Union) Kind() string     { return "union" }
func (Named) Kind() string     { return "named" }
