//go:build !manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library. When the "manifold" build tag is not set, this stub
// package is compiled instead, returning an error from New().
//
// Build with: go build -tags=manifold
package manifold

import (
	"fmt"

	"github.com/chazu/terrace/pkg/kernel"
)

// New returns an error wrapping kernel.ErrUnavailable.
// Build with -tags=manifold to enable.
func New() (kernel.Kernel, error) {
	return nil, fmt.Errorf("manifold %w: build with -tags=manifold", kernel.ErrUnavailable)
}
