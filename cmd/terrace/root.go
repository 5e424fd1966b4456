package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chazu/terrace/internal/logging"
	"github.com/chazu/terrace/pkg/config"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "terrace",
		Short: "Terrace generates and combines simple procedural meshes",
		Long: `Terrace builds box primitives and stepped terrain, unions them through a
boolean geometry kernel, and writes the result as STL, JSON or a log summary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.StringP("out", "o", "", "Output path (stdout for json when empty)")
	pf.StringP("format", "f", "", "Output format: stl, json or summary")
	pf.String("shading", "", "Normal shading: face or vertex")
	pf.String("kernel", "", "Boolean kernel: sdfx or manifold")
	pf.Int("cells", 0, "Marching cubes cells along the longest axis (sdfx)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newBoxCmd(),
		newStepsCmd(),
		newDemoCmd(),
		newEvalCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logging.New(slog.LevelError).Error("terrace failed", "error", err)
		os.Exit(1)
	}
}

// settings loads the config file named by --config and applies every
// persistent flag the user set on top of it.
func settings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("out") {
		cfg.Output.Path, _ = flags.GetString("out")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("shading") {
		cfg.Output.Shading, _ = flags.GetString("shading")
	}
	if flags.Changed("kernel") {
		cfg.Kernel.Name, _ = flags.GetString("kernel")
	}
	if flags.Changed("cells") {
		cfg.Kernel.Cells, _ = flags.GetInt("cells")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// addSeedFlags registers --seed and --random on generator commands.
func addSeedFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed", 0, "Seed for cell elevations (default from config)")
	cmd.Flags().Bool("random", false, "Seed from the clock instead of --seed")
	cmd.MarkFlagsMutuallyExclusive("seed", "random")
}

// seed resolves --seed / --random against the configured seed.
func seed(cmd *cobra.Command, configured uint64) uint64 {
	if random, _ := cmd.Flags().GetBool("random"); random {
		return uint64(time.Now().UnixNano())
	}
	if cmd.Flags().Changed("seed") {
		s, _ := cmd.Flags().GetUint64("seed")
		return s
	}
	return configured
}
