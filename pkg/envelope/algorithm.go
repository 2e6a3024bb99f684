package envelope

import (
	"strings"

	"github.com/matzehuels/due/pkg/errors"
)

// Algorithm selects an envelope construction strategy.
type Algorithm int

const (
	// Randomized is the randomized incremental construction.
	Randomized Algorithm = iota
	// Deterministic is the O(n log U) slope-order construction.
	Deterministic
	// Duality reads the envelope off the lower hull of dual points.
	Duality
	// BruteForce evaluates every line at every integer.
	BruteForce
)

// DefaultAlgorithm is used when no algorithm is selected.
const DefaultAlgorithm = Randomized

var algorithmNames = map[Algorithm]string{
	Randomized:    "ric",
	Deterministic: "deterministic",
	Duality:       "duality",
	BruteForce:    "bruteforce",
}

var algorithmAliases = map[string]Algorithm{
	"ric":           Randomized,
	"randomized":    Randomized,
	"det":           Deterministic,
	"deterministic": Deterministic,
	"dual":          Duality,
	"duality":       Duality,
	"brute":         BruteForce,
	"bruteforce":    BruteForce,
}

// String returns the canonical name of the algorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// Algorithms returns every construction algorithm, oracle last.
func Algorithms() []Algorithm {
	return []Algorithm{Randomized, Deterministic, Duality, BruteForce}
}

// ParseAlgorithm resolves a name or alias (case-insensitive). An empty name
// selects [DefaultAlgorithm].
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return DefaultAlgorithm, nil
	}
	if a, ok := algorithmAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return 0, errors.New(errors.ErrCodeUnsupported,
		"unknown algorithm %q (must be one of: ric, deterministic, duality, bruteforce)", name)
}
