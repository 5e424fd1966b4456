package main

import (
	"github.com/chazu/terrace/pkg/config"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/terrain"
	"github.com/spf13/cobra"
)

func newStepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Generate stepped terrain",
		Long: `Generates a grid of flat square plateaus, each at a random elevation in
[0.1, max-height). --columns closes every cell into a box column so the
result can be combined with other solids.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			p := stepsParams(cmd, a.cfg.Steps)
			columns, _ := cmd.Flags().GetBool("columns")
			a.log.Debug("generating terrain",
				"width", p.Width, "height", p.Height, "step", p.StepSize,
				"max_height", p.MaxHeight, "seed", p.Seed, "columns", columns)
			return a.present(runSteps(p, columns))
		},
	}
	f := cmd.Flags()
	f.Float64("width", 0, "Plane extent along X (default from config)")
	f.Float64("height", 0, "Plane extent along Y (default from config)")
	f.Float64("step", 0, "Cell edge length (default from config)")
	f.Float64("max-height", 0, "Exclusive upper bound of cell elevation (default from config)")
	f.Bool("columns", false, "Emit closed columns instead of open plateaus")
	addSeedFlags(cmd)
	return cmd
}

// stepsParams overlays the command's flags on the configured defaults.
func stepsParams(cmd *cobra.Command, c config.StepsConfig) terrain.Params {
	f := cmd.Flags()
	if f.Changed("width") {
		c.Width, _ = f.GetFloat64("width")
	}
	if f.Changed("height") {
		c.Height, _ = f.GetFloat64("height")
	}
	if f.Changed("step") {
		c.Step, _ = f.GetFloat64("step")
	}
	if f.Changed("max-height") {
		c.MaxHeight, _ = f.GetFloat64("max-height")
	}
	return terrain.Params{
		Width:     c.Width,
		Height:    c.Height,
		StepSize:  c.Step,
		MaxHeight: c.MaxHeight,
		Seed:      seed(cmd, c.Seed),
	}
}

func runSteps(p terrain.Params, columns bool) *mesh.Mesh {
	var m *mesh.Mesh
	if columns {
		m = terrain.Columns(p)
		m.Name = "columns"
	} else {
		m = terrain.Steps(p)
		m.Name = "steps"
	}
	return m
}
