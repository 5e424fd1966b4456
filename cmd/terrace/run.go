package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/terrace/internal/logging"
	"github.com/chazu/terrace/pkg/combine"
	"github.com/chazu/terrace/pkg/config"
	"github.com/chazu/terrace/pkg/kernel"
	"github.com/chazu/terrace/pkg/kernel/manifold"
	"github.com/chazu/terrace/pkg/kernel/sdfx"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/present"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are resolved.
type app struct {
	cfg    config.Config
	log    *slog.Logger
	stdout io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		log:    logging.NewWriter(cmd.ErrOrStderr(), level),
		stdout: cmd.OutOrStdout(),
	}, nil
}

// kernel returns the configured boolean backend.
func (a *app) kernel() (kernel.Kernel, error) {
	switch a.cfg.Kernel.Name {
	case "manifold":
		return manifold.New()
	case "sdfx", "":
		return sdfx.New(a.cfg.Kernel.Cells), nil
	}
	return nil, fmt.Errorf("unknown kernel %q", a.cfg.Kernel.Name)
}

// combiner wires the configured kernel into a Combiner.
func (a *app) combiner() (*combine.Combiner, error) {
	k, err := a.kernel()
	if err != nil {
		return nil, err
	}
	a.log.Debug("kernel ready", "kernel", a.cfg.Kernel.Name, "cells", a.cfg.Kernel.Cells)
	return combine.New(k, a.log), nil
}

// present hands m to the configured presenter. Callers only reach this
// once every generation and combination step has succeeded.
func (a *app) present(m *mesh.Mesh) error {
	mode, err := present.ParseShading(a.cfg.Output.Shading)
	if err != nil {
		return err
	}

	switch a.cfg.Output.Format {
	case "stl":
		if err := present.NewSTL(a.cfg.Output.Path).Present(m, mode); err != nil {
			return err
		}
		a.log.Info("wrote stl", "path", a.cfg.Output.Path, "faces", m.TriangleCount())
		return nil

	case "json":
		if a.cfg.Output.Path == "" {
			return present.NewJSON(a.stdout, false).Present(m, mode)
		}
		// Encode fully before touching the file so a failure leaves nothing behind.
		var buf bytes.Buffer
		if err := present.NewJSON(&buf, false).Present(m, mode); err != nil {
			return err
		}
		if err := os.WriteFile(a.cfg.Output.Path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("present: json: %w", err)
		}
		return nil

	case "summary", "":
		// The summary is the output, so it ignores --log-level.
		return present.NewSummary(logging.NewWriter(a.stdout, slog.LevelInfo)).Present(m, mode)
	}
	return fmt.Errorf("unknown output format %q", a.cfg.Output.Format)
}
