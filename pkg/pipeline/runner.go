package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/due/pkg/envelope"
	dueio "github.com/matzehuels/due/pkg/io"
	"github.com/matzehuels/due/pkg/observability"
	"github.com/matzehuels/due/pkg/postoffice"
)

const (
	kindEnvelope  = "envelope"
	kindTransform = "transform"
)

// Runner executes pipeline runs.
//
// The Runner is stateless except for the logger - it doesn't store results.
// Multiple goroutines can safely use the same Runner with different options;
// every run builds with its own workspace.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// applyLogger uses the runner's logger unless the options carry one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) prepare(opts *Options) error {
	r.applyLogger(opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// LoadLines reads the line set named by opts, or generates a random one,
// and applies the bound overrides.
func (r *Runner) LoadLines(ctx context.Context, opts Options) (dueio.LineSet, error) {
	if err := r.prepare(&opts); err != nil {
		return dueio.LineSet{}, err
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, kindEnvelope, opts.Source())

	var set dueio.LineSet
	var err error
	if opts.IsRandom() {
		set = dueio.RandomLines(opts.Random, DefaultRandomUpper, opts.Seed, nil)
	} else {
		set, err = dueio.ImportLines(opts.Input)
	}
	if err == nil {
		if opts.Upper != 0 {
			set.Upper = opts.Upper
		}
		if opts.Lower != nil {
			set.Lower = *opts.Lower
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, kindEnvelope, opts.Source(), len(set.Lines), time.Since(start), err)
	if err != nil {
		return dueio.LineSet{}, fmt.Errorf("load: %w", err)
	}
	opts.Logger.Debug("loaded lines", "source", opts.Source(), "lines", len(set.Lines),
		"domain", fmt.Sprintf("[%d,%d]", set.Lower, set.Upper))
	return set, nil
}

// LoadSites reads the site set named by opts, or generates a random one.
func (r *Runner) LoadSites(ctx context.Context, opts Options) (dueio.SiteSet, error) {
	if err := r.prepare(&opts); err != nil {
		return dueio.SiteSet{}, err
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, kindTransform, opts.Source())

	var set dueio.SiteSet
	var err error
	if opts.IsRandom() {
		u := DefaultRandomGrid
		if opts.Upper != 0 {
			u = opts.Upper
		}
		set = dueio.RandomSites(opts.Random, u, opts.Seed)
	} else {
		set, err = dueio.ImportSites(opts.Input)
		if err == nil && opts.Upper != 0 {
			set.U = opts.Upper
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, kindTransform, opts.Source(), len(set.Sites), time.Since(start), err)
	if err != nil {
		return dueio.SiteSet{}, fmt.Errorf("load: %w", err)
	}
	opts.Logger.Debug("loaded sites", "source", opts.Source(), "sites", len(set.Sites), "u", set.U)
	return set, nil
}

// Envelope loads a line set and builds its envelope.
func (r *Runner) Envelope(ctx context.Context, opts Options) (*EnvelopeResult, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	result := &EnvelopeResult{RunID: uuid.NewString(), Algorithm: opts.algorithm}
	logger := opts.Logger.With("run", result.RunID[:8])

	loadStart := time.Now()
	set, err := r.LoadLines(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Lines = set
	result.Stats.Inputs = len(set.Lines)
	result.Stats.LoadTime = time.Since(loadStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	alg := opts.algorithm.String()
	observability.Pipeline().OnBuildStart(ctx, kindEnvelope, alg, len(set.Lines))
	env := envelope.New(envelope.WithSeed(opts.Seed), envelope.WithLogger(logger))
	err = env.BuildWith(opts.algorithm, set.Lines, set.Lower, set.Upper)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, kindEnvelope, alg, env.Len(), result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Envelope = env
	result.Stats.Cells = env.Len()

	logger.Info("built envelope",
		"algorithm", alg,
		"lines", len(set.Lines),
		"cells", env.Len(),
		"duration", result.Stats.BuildTime)

	if !opts.Verify {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verifyStart := time.Now()
	err = env.Check(set.Lines)
	result.Stats.VerifyTime = time.Since(verifyStart)
	observability.Verify().OnVerify(ctx, kindEnvelope, alg, err == nil, result.Stats.VerifyTime)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	result.Verified = true
	logger.Info("verified against brute force", "duration", result.Stats.VerifyTime)
	return result, nil
}

// Transform loads a site set and builds its post-office transform.
func (r *Runner) Transform(ctx context.Context, opts Options) (*TransformResult, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	result := &TransformResult{RunID: uuid.NewString(), Algorithm: opts.algorithm}
	logger := opts.Logger.With("run", result.RunID[:8])

	loadStart := time.Now()
	set, err := r.LoadSites(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Sites = set
	result.Stats.Inputs = len(set.Sites)
	result.Stats.LoadTime = time.Since(loadStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	alg := opts.algorithm.String()
	buildOpts := []postoffice.Option{
		postoffice.WithAlgorithm(opts.algorithm),
		postoffice.WithSeed(opts.Seed),
		postoffice.WithLogger(logger),
	}
	if opts.Sorted {
		buildOpts = append(buildOpts, postoffice.WithSorted())
	}

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, kindTransform, alg, len(set.Sites))
	tr, err := postoffice.Build(set.Sites, set.U, buildOpts...)
	result.Stats.BuildTime = time.Since(buildStart)
	cells := 0
	if tr != nil {
		cells = tr.Stats().Cells
	}
	observability.Pipeline().OnBuildComplete(ctx, kindTransform, alg, cells, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Transform = tr
	result.Stats.Cells = cells

	logger.Info("built transform",
		"algorithm", alg,
		"sites", len(set.Sites),
		"columns", tr.Stats().Columns,
		"u", set.U,
		"duration", result.Stats.BuildTime)

	if !opts.Verify {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verifyStart := time.Now()
	err = tr.Check(set.Sites, set.U)
	result.Stats.VerifyTime = time.Since(verifyStart)
	observability.Verify().OnVerify(ctx, kindTransform, alg, err == nil, result.Stats.VerifyTime)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	result.Verified = true
	logger.Info("verified against brute force", "duration", result.Stats.VerifyTime)
	return result, nil
}

// Compare builds the envelope of one line set with every algorithm, times
// each build and checks it against brute force. The Algorithm and Verify
// options are ignored.
func (r *Runner) Compare(ctx context.Context, opts Options) (*CompareResult, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	result := &CompareResult{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	loadStart := time.Now()
	set, err := r.LoadLines(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Lines = set
	result.Stats.Inputs = len(set.Lines)
	result.Stats.LoadTime = time.Since(loadStart)

	ref := envelope.New(envelope.WithLogger(logger))
	refStart := time.Now()
	if err := ref.BuildBruteForce(set.Lines, set.Lower, set.Upper); err != nil {
		return nil, fmt.Errorf("build %s: %w", envelope.BruteForce, err)
	}
	result.Stats.VerifyTime = time.Since(refStart)
	result.Stats.Cells = ref.Len()

	ws := envelope.NewWorkspace(len(set.Lines))
	for _, alg := range envelope.Algorithms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observability.Pipeline().OnBuildStart(ctx, kindEnvelope, alg.String(), len(set.Lines))
		env := envelope.New(envelope.WithWorkspace(ws), envelope.WithSeed(opts.Seed), envelope.WithLogger(logger))
		start := time.Now()
		err := env.BuildWith(alg, set.Lines, set.Lower, set.Upper)
		elapsed := time.Since(start)
		observability.Pipeline().OnBuildComplete(ctx, kindEnvelope, alg.String(), env.Len(), elapsed, err)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", alg, err)
		}

		t := Timing{
			Algorithm: alg,
			Duration:  elapsed,
			Cells:     env.Len(),
			Mismatch:  envelope.FirstDifference(ref.Cells(), env.Cells()),
		}
		observability.Verify().OnVerify(ctx, kindEnvelope, alg.String(), t.Agrees(), 0)
		result.Timings = append(result.Timings, t)
		result.Stats.BuildTime += elapsed

		if t.Agrees() {
			logger.Debug("algorithm agrees", "algorithm", alg, "duration", elapsed)
		} else {
			logger.Warn("algorithm disagrees with brute force", "algorithm", alg, "cell", t.Mismatch)
		}
	}
	return result, nil
}
