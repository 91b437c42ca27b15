package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taxocheck/pkg/cache"
	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/observability"
	"github.com/matzehuels/taxocheck/pkg/source"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

func taxonomyDir(t *testing.T, description, composition string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"description.csv": description,
		"composition.csv": composition,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	src, err := source.New(config.Default().Files)
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(src, c, nil, log.New(io.Discard))
}

type countingHooks struct {
	observability.NoopValidationHooks
	observability.NoopCacheHooks
	hits, misses, sets, validated atomic.Int32
}

func (h *countingHooks) OnCacheHit(context.Context, string)           { h.hits.Add(1) }
func (h *countingHooks) OnCacheMiss(context.Context, string)          { h.misses.Add(1) }
func (h *countingHooks) OnCacheSet(context.Context, string, int)      { h.sets.Add(1) }
func (h *countingHooks) OnValidateComplete(context.Context, string, int, time.Duration) {
	h.validated.Add(1)
}

func TestRunnerValidate(t *testing.T) {
	dir := taxonomyDir(t, "code\n1\n2\n", "parent,child\n,1\n1,2\n")
	r := newTestRunner(t, nil)

	res, err := r.Validate(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !res.OK() {
		t.Errorf("Validate() findings = %v, want none", res.Report.Messages())
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.Dir != dir {
		t.Errorf("Dir = %q, want %q", res.Dir, dir)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %+v, want 3 nodes, 2 edges", res.Stats)
	}
	if res.Report.Tree == nil {
		t.Error("Report.Tree should be set for a sound taxonomy")
	}
}

func TestRunnerValidateUsesFileNames(t *testing.T) {
	dir := taxonomyDir(t, "code\n1\n2\n", "parent,child\n0,1\n")
	r := newTestRunner(t, nil)

	res, err := r.Validate(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := "codes declared in description.csv are not used in composition.csv: 2"
	if got := res.Report.Messages(); len(got) != 1 || got[0] != want {
		t.Errorf("Messages() = %v, want [%s]", got, want)
	}
}

func TestRunnerValidateNonFiniteCells(t *testing.T) {
	dir := taxonomyDir(t, "code\n1\nNaN\n", "parent,child\n,1\n1,NaN\n1,Inf\n")
	r := newTestRunner(t, cache.NewNullCache())

	res, err := r.Validate(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if res.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", res.Stats.NodeCount)
	}
	want := "codes used in composition.csv are missing from description.csv: Inf"
	if got := res.Report.Messages(); len(got) != 1 || got[0] != want {
		t.Errorf("Messages() = %v, want [%s]", got, want)
	}
}

func TestRunnerCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hooks := &countingHooks{}
	r := newTestRunner(t, fc)
	r.Hooks = observability.Hooks{Validation: hooks, Cache: hooks}

	dir := taxonomyDir(t, "code\n1\n2\n", "parent,child\n,1\n1,2\n")
	ctx := context.Background()

	first, err := r.Validate(ctx, dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Validate(ctx, dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.InputHash != first.InputHash {
		t.Error("InputHash should be stable")
	}
	if second.Report.Tree == nil || len(second.Report.Tree.Children(code.Root)) != 1 {
		t.Error("cached report should restore the tree")
	}

	third, err := r.Validate(ctx, dir, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	if hooks.hits.Load() != 1 || hooks.misses.Load() != 1 || hooks.sets.Load() != 2 || hooks.validated.Load() != 2 {
		t.Errorf("hooks = hits %d misses %d sets %d validated %d, want 1 1 2 2",
			hooks.hits.Load(), hooks.misses.Load(), hooks.sets.Load(), hooks.validated.Load())
	}
}

func TestRunnerValidateInput(t *testing.T) {
	r := NewRunner(nil, nil, nil, log.New(io.Discard))
	res, err := r.ValidateInput(context.Background(), &validate.Input{
		Description: []code.Code{"1"},
		Composition: []dag.Pair{{Parent: 0, Child: 1}, {Parent: 1, Child: 0}},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.OK() {
		t.Error("cyclic input should not be OK")
	}
	if len(res.Report.ByRule(validate.RuleCycle)) != 1 {
		t.Errorf("findings = %v, want a cycle", res.Report.Messages())
	}
}

func TestRunnerValidateAll(t *testing.T) {
	good := taxonomyDir(t, "code\n1\n", "parent,child\n0,1\n")
	bad := taxonomyDir(t, "code\n1\n", "parent,child\n0,1\n0,2\n")
	missing := filepath.Join(t.TempDir(), "nope")

	r := newTestRunner(t, nil)
	r.Workers = 2

	results, err := r.ValidateAll(context.Background(), []string{good, bad, missing, good}, Options{})
	if err != nil {
		t.Fatalf("ValidateAll() error = %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}

	for i, want := range []string{good, bad, missing, good} {
		if results[i].Dir != want {
			t.Errorf("results[%d].Dir = %q, want %q", i, results[i].Dir, want)
		}
	}
	if !results[0].OK() || !results[3].OK() {
		t.Error("good folders should be OK")
	}
	if results[1].OK() || results[1].Err != nil {
		t.Errorf("bad folder: OK %v, Err %v; want findings without error", results[1].OK(), results[1].Err)
	}
	if !errors.Is(results[2].Err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing folder Err = %v, want FILE_NOT_FOUND", results[2].Err)
	}
}

func TestRunnerValidateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := taxonomyDir(t, "code\n1\n", "parent,child\n0,1\n")
	results, err := newTestRunner(t, nil).ValidateAll(ctx, []string{dir, dir}, Options{})
	if err == nil {
		t.Fatal("ValidateAll() should fail on a canceled context")
	}
	for i, res := range results {
		if res == nil || res.Err == nil {
			t.Errorf("results[%d] should carry the cancellation", i)
		}
	}
}
