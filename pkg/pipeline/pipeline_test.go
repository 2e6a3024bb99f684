package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/due/pkg/envelope"
	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/observability"
)

const exampleLines = `
lower = 1
upper = 10

[[lines]]
m = 2
b = 98
id = 0
[[lines]]
m = 4
b = 95
id = 1
[[lines]]
m = 4
b = 1
id = 11
[[lines]]
m = 8
b = 79
id = 2
[[lines]]
m = 8
b = 3
id = 22
[[lines]]
m = 10
b = 59
id = 3
[[lines]]
m = 12
b = 63
id = 4
[[lines]]
m = 14
b = 35
id = 5
[[lines]]
m = 20
b = 0
id = 6
`

const exampleSites = `
u = 5

[[sites]]
x = 2
y = 2
id = 1
[[sites]]
x = 4
y = 4
id = 2
[[sites]]
x = 2
y = 5
id = 3
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type recorder struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (r *recorder) OnLoadComplete(_ context.Context, kind, _ string, _ int, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "load:"+kind)
}

func (r *recorder) OnBuildComplete(_ context.Context, kind, algorithm string, _ int, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "build:"+kind+":"+algorithm)
}

func TestValidateAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"ric", false},
		{"deterministic", false},
		{"duality", false},
		{"bruteforce", false},
		{"", false}, // default
		{"voronoi", true},
	}

	for _, tt := range tests {
		err := ValidateAlgorithm(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateAlgorithm(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should validate: %v", err)
	}
	if opts.Algorithm != DefaultAlgorithm {
		t.Errorf("Algorithm = %q, want %q", opts.Algorithm, DefaultAlgorithm)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Random != DefaultRandomCount {
		t.Errorf("Random = %d, want %d", opts.Random, DefaultRandomCount)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if !opts.IsRandom() {
		t.Error("options without input should be random")
	}

	// Idempotent
	opts.Algorithm = "garbage"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op: %v", err)
	}
}

func TestValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad algorithm", Options{Algorithm: "voronoi"}, errors.ErrCodeUnsupported},
		{"bad path", Options{Input: "lines.json"}, errors.ErrCodeInvalidPath},
		{"negative random", Options{Random: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRunner_Envelope(t *testing.T) {
	path := writeFile(t, "lines.toml", exampleLines)
	runner := NewRunner(nil)

	for _, alg := range envelope.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			result, err := runner.Envelope(context.Background(), Options{Input: path, Algorithm: alg.String(), Verify: true})
			if err != nil {
				t.Fatal(err)
			}
			if got := result.Envelope.String(); got != "[(0,1,1) (1,2,4) (4,5,7) (6,8,10)]" {
				t.Errorf("envelope = %s", got)
			}
			if !result.Verified {
				t.Error("result should be verified")
			}
			if result.Stats.Inputs != 9 || result.Stats.Cells != 4 {
				t.Errorf("stats = %+v", result.Stats)
			}
			if len(result.RunID) != 36 {
				t.Errorf("RunID %q is not a UUID", result.RunID)
			}
		})
	}
}

func TestRunner_EnvelopeOverrides(t *testing.T) {
	path := writeFile(t, "lines.toml", exampleLines)
	lower := int64(5)
	result, err := NewRunner(nil).Envelope(context.Background(), Options{Input: path, Lower: &lower, Upper: 7})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Envelope.String(); got != "[(4,5,7)]" {
		t.Errorf("envelope = %s", got)
	}
}

func TestRunner_EnvelopeErrors(t *testing.T) {
	runner := NewRunner(nil)

	_, err := runner.Envelope(context.Background(), Options{Input: filepath.Join(t.TempDir(), "missing.toml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v", err)
	}

	empty := writeFile(t, "empty.toml", "upper = 10\n")
	_, err = runner.Envelope(context.Background(), Options{Input: empty})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty line set: got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Envelope(ctx, Options{Random: 10})
	if err != context.Canceled {
		t.Errorf("canceled context: got %v", err)
	}
}

func TestRunner_Transform(t *testing.T) {
	path := writeFile(t, "sites.toml", exampleSites)
	result, err := NewRunner(nil).Transform(context.Background(), Options{Input: path, Algorithm: "duality", Verify: true})
	if err != nil {
		t.Fatal(err)
	}

	tr := result.Transform
	checks := []struct {
		x, y int64
		want int
	}{{5, 1, 1}, {1, 4, 3}, {4, 4, 2}}
	for _, c := range checks {
		if got := tr.Query(c.x, c.y); got != c.want {
			t.Errorf("Query(%d, %d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
	if !result.Verified || result.Algorithm != envelope.Duality {
		t.Errorf("result = %+v", result)
	}
}

func TestRunner_TransformRandom(t *testing.T) {
	result, err := NewRunner(nil).Transform(context.Background(), Options{Random: 50, Upper: 30, Verify: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Sites.U != 30 || len(result.Sites.Sites) != 50 {
		t.Errorf("sites = %d on u=%d", len(result.Sites.Sites), result.Sites.U)
	}
}

func TestRunner_Compare(t *testing.T) {
	rec := &recorder{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	result, err := NewRunner(nil).Compare(context.Background(), Options{Random: 300, Upper: 2000, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Timings) != len(envelope.Algorithms()) {
		t.Fatalf("got %d timings", len(result.Timings))
	}
	if !result.AllAgree() {
		t.Errorf("algorithms disagree: %+v", result.Timings)
	}
	for _, timing := range result.Timings {
		if timing.Cells != result.Stats.Cells {
			t.Errorf("%s produced %d cells, brute force %d", timing.Algorithm, timing.Cells, result.Stats.Cells)
		}
	}

	want := []string{"load:envelope", "build:envelope:ric", "build:envelope:deterministic", "build:envelope:duality", "build:envelope:bruteforce"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v", rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, rec.events[i], want[i])
		}
	}
}
