package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chazu/terrace/pkg/combine"
	"github.com/chazu/terrace/pkg/engine"
	"github.com/chazu/terrace/pkg/mesh"
	"github.com/chazu/terrace/pkg/scene"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate a scene script",
		Long: `Evaluates a Lisp scene script and presents the mesh it describes.
FILE may be - to read the script from stdin.

Example:

  (def base (box 20 20 0.5))
  (union base (translate (columns 20 20 1 0.4 :seed 7) (vec3 0 0 0.5)))`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			source, err := readScript(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			c, err := a.combiner()
			if err != nil {
				return err
			}
			timeout, _ := cmd.Flags().GetDuration("timeout")
			m, err := a.runEval(source, c, timeout)
			if err != nil {
				return err
			}
			return a.present(m)
		},
	}
	cmd.Flags().Duration("timeout", engine.EvalTimeout, "Give up on scripts that run longer than this")
	return cmd
}

func readScript(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("eval: read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("eval: %w", err)
	}
	return string(b), nil
}

// runEval evaluates source and builds the resulting scene. Script errors are
// logged one per line and reported as a single error.
func (a *app) runEval(source string, c *combine.Combiner, timeout time.Duration) (*mesh.Mesh, error) {
	n, evalErrs, err := engine.NewEngine().WithTimeout(timeout).Evaluate(source)
	if errors.Is(err, engine.ErrTimeout) {
		a.log.Error("script timed out", "limit", timeout)
		return nil, fmt.Errorf("eval: %w (raise --timeout for heavy scripts)", err)
	}
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			a.log.Error("script error", "line", e.Line, "msg", e.Message)
		}
		return nil, fmt.Errorf("eval: script has %d error(s): %w", len(evalErrs), evalErrs[0])
	}
	if n == nil {
		return nil, fmt.Errorf("eval: script is empty")
	}

	a.log.Debug("scene evaluated", "root", n.Kind())
	m, err := scene.Build(n, c)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	return m, nil
}
