package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/terrace/pkg/scene"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	n, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if n != nil {
		t.Errorf("expected nil node, got %#v", n)
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	n, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if n != nil {
		t.Errorf("expected nil node, got %#v", n)
	}
}

func TestEvaluateNonNodeResult(t *testing.T) {
	eng := NewEngine()

	// (+ 1 2) is valid Lisp but does not describe a scene.
	n, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if n != nil {
		t.Fatalf("expected nil node, got %#v", n)
	}
	if len(evalErrs) != 1 {
		t.Fatalf("expected 1 eval error, got %v", evalErrs)
	}
	if !strings.Contains(evalErrs[0].Message, "scene node") {
		t.Errorf("message = %q, want mention of scene node", evalErrs[0].Message)
	}
}

func TestEvaluateMultipleExpressions(t *testing.T) {
	eng := NewEngine()

	source := `
(def x 10)
(def y 20)
(box x y 1)
`
	n, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	want := scene.Box{Length: 10, Width: 20, Height: 1}
	if n != want {
		t.Errorf("node = %#v, want %#v", n, want)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	// Unmatched paren is a parse error.
	n, evalErrs, err := eng.Evaluate("(box 1 2")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if n != nil {
		t.Fatal("expected nil node on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	n, evalErrs, err := eng.Evaluate("(box 1 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if n != nil {
		t.Fatal("expected nil node on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateSyntaxErrorHasLineInfo(t *testing.T) {
	eng := NewEngine()

	// Put the error on line 2.
	source := "(def a 1)\n(box 3"
	n, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if n != nil {
		t.Fatal("expected nil node on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}

	// Line info depends on the zygomys error format.
	e := evalErrs[0]
	if e.Message == "" {
		t.Error("eval error message should not be empty")
	}
	if e.Line > 0 {
		t.Logf("extracted line info: line=%d, message=%q", e.Line, e.Message)
	} else {
		t.Logf("no line info extracted (line=0), message=%q", e.Message)
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Col: 0, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	// No line info.
	e2 := EvalError{Line: 0, Col: 0, Message: "no location"}
	s2 := e2.Error()
	if strings.Contains(s2, "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", s2)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()

	var first scene.Node
	for i := 0; i < 5; i++ {
		n, evalErrs, err := eng.Evaluate("(steps 4 4 1 0.5 :seed 3)")
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		if i == 0 {
			first = n
			continue
		}
		if n != first {
			t.Errorf("iteration %d: node = %#v, want %#v", i, n, first)
		}
	}
}

func TestEvaluateTimeout(t *testing.T) {
	// A channel that never sends stands in for a script that never finishes.
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult)

	timeout := 50 * time.Millisecond
	done := make(chan struct{})
	var resultErr error

	go func() {
		defer close(done)
		_, _, resultErr = waitWithTimeout(ch, 1, &mu, &gen, timeout)
	}()

	select {
	case <-done:
		if resultErr == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if !errors.Is(resultErr, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got: %v", resultErr)
		}
		if !strings.Contains(resultErr.Error(), "after 50ms") {
			t.Errorf("expected the limit in the message, got: %v", resultErr)
		}
	case <-time.After(timeout + 2*time.Second):
		t.Fatal("test itself timed out waiting for evaluation timeout")
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2) // Current generation is 2

	ch := make(chan evalResult, 1)
	ch <- evalResult{node: scene.Box{Length: 1, Width: 1, Height: 1}}

	// Pass generation 1 (stale).
	n, _, err := waitWithTimeout(ch, 1, &mu, &gen, EvalTimeout)
	if err == nil {
		t.Fatal("expected error for stale generation")
	}
	if n != nil {
		t.Errorf("stale result should be discarded, got %#v", n)
	}
	if !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got: %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	eng := NewEngine()
	if eng.timeout != EvalTimeout {
		t.Errorf("default timeout = %s, want %s", eng.timeout, EvalTimeout)
	}
	if got := eng.WithTimeout(time.Second); got != eng || eng.timeout != time.Second {
		t.Errorf("WithTimeout did not update the engine in place")
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: unexpected token\n",
			wantLine: 5,
			wantMsg:  "unexpected token",
		},
		{
			name:     "no line info",
			msg:      "some generic error",
			wantLine: 0,
			wantMsg:  "some generic error",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
		{
			name:     "short line format",
			msg:      "line 3: box requires 3 arguments",
			wantLine: 3,
			wantMsg:  "box requires",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }
