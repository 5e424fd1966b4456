package main

import (
	"fmt"
	"strconv"

	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/primitive"
	"github.com/spf13/cobra"
	"github.com/ungerik/go3d/float64/vec3"
)

func newBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "box LENGTH WIDTH HEIGHT",
		Short: "Generate an axis-aligned box",
		Long: `Generates a closed box spanning [0,LENGTH]x[0,WIDTH]x[0,HEIGHT],
optionally moved with --at.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			dims, err := parseFloats(args, "length", "width", "height")
			if err != nil {
				return err
			}
			at, _ := cmd.Flags().GetFloat64Slice("at")
			m, err := runBox(dims[0], dims[1], dims[2], at)
			if err != nil {
				return err
			}
			return a.present(m)
		},
	}
	cmd.Flags().Float64Slice("at", nil, "Translate the box by X,Y,Z")
	return cmd
}

func runBox(length, width, height float64, at []float64) (*mesh.Mesh, error) {
	m := primitive.Box(length, width, height)
	m.Name = "box"
	if len(at) > 0 {
		offset, err := toOffset(at)
		if err != nil {
			return nil, err
		}
		mesh.Translate(m, offset)
	}
	return m, nil
}

func parseFloats(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

func toOffset(v []float64) (vec3.T, error) {
	if len(v) != 3 {
		return vec3.T{}, fmt.Errorf("offset needs 3 components, got %d", len(v))
	}
	return vec3.T{v[0], v[1], v[2]}, nil
}
