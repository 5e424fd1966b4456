// Package primitive builds closed primitive meshes.
package primitive

import (
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// boxFaces triangulates the corners produced by Box. Corner k has bit 2
// set for x=length, bit 1 for y=width and bit 0 for z=height. Every
// triangle winds counter-clockwise seen from outside the box.
var boxFaces = [12]mesh.Face{
	{0, 6, 4}, {0, 2, 6}, // z = 0
	{0, 3, 2}, {0, 1, 3}, // x = 0
	{2, 7, 6}, {2, 3, 7}, // y = width
	{4, 6, 7}, {4, 7, 5}, // x = length
	{0, 4, 5}, {0, 5, 1}, // y = 0
	{1, 5, 7}, {1, 7, 3}, // z = height
}

// Box returns the axis-aligned box [0,length]x[0,width]x[0,height] as a
// watertight mesh of 8 vertices and 12 outward-facing triangles.
//
// Non-positive dimensions are not rejected; they produce a flat or
// inside-out box.
func Box(length, width, height float64) *mesh.Mesh {
	m := mesh.New(8, 12)
	for k := 0; k < 8; k++ {
		var v vec3.T
		if k&4 != 0 {
			v[0] = length
		}
		if k&2 != 0 {
			v[1] = width
		}
		if k&1 != 0 {
			v[2] = height
		}
		m.Vertices = append(m.Vertices, v)
	}
	m.Faces = append(m.Faces, boxFaces[:]...)
	return m
}
