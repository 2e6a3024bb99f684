// Package pipeline provides the load → build → verify pipeline shared by the
// due CLI commands.
//
// # Architecture
//
// Every run has three stages:
//
//  1. Load: read a TOML line or site set, or generate a random one
//  2. Build: construct the envelope or post-office transform
//  3. Verify: optionally cross-check against the brute-force reference
//
// Each stage emits [observability] events and is logged through the
// configured logger. Context cancellation is checked between stages; a
// construction in progress always runs to completion.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Envelope(ctx, pipeline.Options{
//	    Input:     "lines.toml",
//	    Algorithm: "duality",
//	    Verify:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Envelope)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/due/pkg/envelope"
	"github.com/matzehuels/due/pkg/errors"
	dueio "github.com/matzehuels/due/pkg/io"
	"github.com/matzehuels/due/pkg/postoffice"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = envelope.DefaultSeed

	// DefaultAlgorithm is the default construction algorithm.
	DefaultAlgorithm = "ric"

	// DefaultRandomCount is the number of random lines or sites generated
	// when no input file is given.
	DefaultRandomCount = 1000

	// DefaultRandomUpper is the upper domain bound of random line sets.
	DefaultRandomUpper = int64(10_000)

	// DefaultRandomGrid is the grid bound of random site sets.
	DefaultRandomGrid = int64(256)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Input  string `json:"input,omitempty"`  // TOML file; empty generates random input
	Random int    `json:"random,omitempty"` // random input size
	Upper  int64  `json:"upper,omitempty"`  // overrides the file's upper bound (or U)
	Lower  *int64 `json:"lower,omitempty"`  // overrides the file's lower bound

	// Build options
	Algorithm string `json:"algorithm,omitempty"`
	Seed      uint64 `json:"seed,omitempty"`
	Sorted    bool   `json:"sorted,omitempty"` // transform only: sites are (x,y)-sorted

	// Verify options
	Verify bool `json:"verify,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	algorithm envelope.Algorithm
	validated bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Inputs     int
	Cells      int
	LoadTime   time.Duration
	BuildTime  time.Duration
	VerifyTime time.Duration
}

// EnvelopeResult contains the outputs of an envelope run.
type EnvelopeResult struct {
	RunID     string
	Algorithm envelope.Algorithm
	Lines     dueio.LineSet
	Envelope  *envelope.Envelope
	Verified  bool
	Stats     Stats
}

// TransformResult contains the outputs of a transform run.
type TransformResult struct {
	RunID     string
	Algorithm envelope.Algorithm
	Sites     dueio.SiteSet
	Transform *postoffice.Transform
	Verified  bool
	Stats     Stats
}

// CompareResult contains one timing per construction algorithm.
type CompareResult struct {
	RunID   string
	Lines   dueio.LineSet
	Timings []Timing
	Stats   Stats
}

// Timing is one algorithm's run in a comparison.
type Timing struct {
	Algorithm envelope.Algorithm
	Duration  time.Duration
	Cells     int
	Mismatch  int // first cell differing from brute force, -1 if none
}

// Agrees reports whether the algorithm matched brute force.
func (t Timing) Agrees() bool { return t.Mismatch < 0 }

// AllAgree reports whether every algorithm matched brute force.
func (r *CompareResult) AllAgree() bool {
	for _, t := range r.Timings {
		if !t.Agrees() {
			return false
		}
	}
	return true
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateAlgorithm checks that name is a known construction algorithm.
func ValidateAlgorithm(name string) error {
	_, err := envelope.ParseAlgorithm(name)
	return err
}

// ValidateRandom checks a random input size.
func ValidateRandom(n int) error {
	if n < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "random count must be positive, got %d", n)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateRandom(o.Random); err != nil {
		return err
	}
	if o.Input != "" {
		if err := errors.ValidatePath(o.Input); err != nil {
			return err
		}
	}
	o.SetBuildDefaults()
	alg, err := envelope.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	o.algorithm = alg
	o.validated = true
	return nil
}

// SetBuildDefaults sets default values for construction.
func (o *Options) SetBuildDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Random == 0 {
		o.Random = DefaultRandomCount
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsRandom returns true if the run generates its input.
func (o *Options) IsRandom() bool {
	return o.Input == ""
}

// Source describes where the input comes from, for logs and hooks.
func (o *Options) Source() string {
	if o.IsRandom() {
		return fmt.Sprintf("random(n=%d, seed=%d)", o.Random, o.Seed)
	}
	return o.Input
}
