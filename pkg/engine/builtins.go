package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/terrace/pkg/scene"
	"github.com/chazu/terrace/pkg/terrain"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/ungerik/go3d/float64/vec3"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites scene script source before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: max-height -> max_height
//     zygomys reads a hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments.
//
// String literals are copied through untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNode wraps a scene.Node so it can be passed between builtins and
// returned as the value of a script.
type sexpNode struct {
	node scene.Node
}

func (n *sexpNode) SexpString(ps *zygo.PrintState) string {
	if named, ok := n.node.(scene.Named); ok {
		return fmt.Sprintf("(named %q)", named.Name)
	}
	return fmt.Sprintf("(%s)", n.node.Kind())
}
func (n *sexpNode) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a vec3.T.
type sexpVec3 struct {
	vec vec3.T
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toSeed extracts a non-negative integer seed.
func toSeed(s zygo.Sexp) (uint64, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
	}
	if v.Val < 0 {
		return 0, fmt.Errorf("expected non-negative integer, got %d", v.Val)
	}
	return uint64(v.Val), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNode extracts a scene.Node from a sexpNode.
func toNode(s zygo.Sexp) (scene.Node, error) {
	if n, ok := s.(*sexpNode); ok {
		return n.node, nil
	}
	return nil, fmt.Errorf("expected scene node, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vec3.T from a sexpVec3.
func toVec3(s zygo.Sexp) (vec3.T, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vec3.T{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toFloats extracts exactly len(names) numbers from positional args.
func toFloats(fn string, args []zygo.Sexp, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires %d arguments (%s), got %d",
			fn, len(names), strings.Join(names, " "), len(args))
	}
	out := make([]float64, len(names))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// terrainParams reads (fn w h step max [:seed n]).
func terrainParams(fn string, args []zygo.Sexp) (terrain.Params, error) {
	pa := parseArgs(args)
	f, err := toFloats(fn, pa.positional, "width", "height", "step", "max-height")
	if err != nil {
		return terrain.Params{}, err
	}
	p := terrain.Params{Width: f[0], Height: f[1], StepSize: f[2], MaxHeight: f[3]}
	if v, ok := pa.kw["seed"]; ok {
		seed, err := toSeed(v)
		if err != nil {
			return terrain.Params{}, fmt.Errorf("%s: seed: %w", fn, err)
		}
		p.Seed = seed
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (box 2 3 4)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats("box", args, "length", "width", "height")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNode{node: scene.Box{Length: f[0], Width: f[1], Height: f[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (steps 10 10 1 0.4 :seed 7)
	// -----------------------------------------------------------------------
	env.AddFunction("steps", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := terrainParams("steps", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNode{node: scene.Steps{Params: p}}, nil
	})

	// -----------------------------------------------------------------------
	// (columns 10 10 1 0.4 :seed 7)
	// -----------------------------------------------------------------------
	env.AddFunction("columns", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := terrainParams("columns", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNode{node: scene.Columns{Params: p}}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: vec3.T{x, y, z}}, nil
	})

	// -----------------------------------------------------------------------
	// (translate (box 1 1 1) (vec3 1 0 0))
	// (translate (box 1 1 1) :by (vec3 1 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("translate requires a scene node as first argument")
		}
		child, err := toNode(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: node: %w", err)
		}

		var offset zygo.Sexp
		switch v, ok := pa.kw["by"]; {
		case ok && len(pa.positional) == 1:
			offset = v
		case !ok && len(pa.positional) == 2:
			offset = pa.positional[1]
		default:
			return zygo.SexpNull, fmt.Errorf("translate requires exactly one offset, positional or :by")
		}
		vec, err := toVec3(offset)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: by: %w", err)
		}

		return &sexpNode{node: scene.Translate{Offset: vec, Child: child}}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b c ...)
	// -----------------------------------------------------------------------
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("union requires at least one scene node")
		}
		children := make([]scene.Node, 0, len(args))
		for i, a := range args {
			n, err := toNode(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("union: child %d: %w", i, err)
			}
			children = append(children, n)
		}
		return &sexpNode{node: scene.Union{Children: children}}, nil
	})

	// -----------------------------------------------------------------------
	// (named "plinth" (box 4 4 1))
	// -----------------------------------------------------------------------
	env.AddFunction("named", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("named requires a name and a scene node")
		}
		label, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("named: name: %w", err)
		}
		child, err := toNode(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("named: node: %w", err)
		}
		return &sexpNode{node: scene.Named{Name: label, Child: child}}, nil
	})
}
