package solver

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm names one combination counter.
type Algorithm string

const (
	// Recursive is the reference largest-coin-first recursion.
	Recursive Algorithm = "recursive"

	// Iterative is the same recursion on an explicit stack.
	Iterative Algorithm = "iterative"

	// Memoized is the recursion with a bounded memo table.
	Memoized Algorithm = "memoized"

	// Tabulated fills the full table and keeps it for rendering.
	Tabulated Algorithm = "tabulated"

	// Parallel fills the full table with residue chains spread over workers.
	Parallel Algorithm = "parallel"

	// Rolling keeps a single table row and only yields the count.
	Rolling Algorithm = "rolling"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists every counter, cheapest reference first.
func Algorithms() []Algorithm {
	return []Algorithm{Recursive, Iterative, Memoized, Tabulated, Parallel, Rolling}
}

func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms() {
		if alg == known {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// recursesOnCallStack reports whether the algorithm's depth is bounded by
// the Go call stack.
func (a Algorithm) recursesOnCallStack() bool {
	return a == Recursive || a == Memoized
}

// enumerates reports whether the algorithm visits every combination, so
// that its running time grows with the count itself.
func (a Algorithm) enumerates() bool {
	return a == Recursive || a == Iterative
}
