package main

import (
	"github.com/chazu/terrace/pkg/combine"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/primitive"
	"github.com/spf13/cobra"
	"github.com/ungerik/go3d/float64/vec3"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Union two overlapping boxes",
		Long: `Builds Box(2,3,4), a copy translated by (1,0,0), and presents their union.
The result spans (0,0,0) to (3,3,4).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			c, err := a.combiner()
			if err != nil {
				return err
			}
			m, err := runDemo(c)
			if err != nil {
				return err
			}
			return a.present(m)
		},
	}
}

func runDemo(c *combine.Combiner) (*mesh.Mesh, error) {
	a := primitive.Box(2, 3, 4)
	b := mesh.Translated(a, vec3.T{1, 0, 0})
	m, err := c.Union(a, b)
	if err != nil {
		return nil, err
	}
	m.Name = "demo"
	return m, nil
}
