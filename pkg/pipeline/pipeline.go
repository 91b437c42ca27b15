// Package pipeline runs the load → validate stages over taxonomy folders.
//
// The [Runner] is shared by the CLI and the API server so both entry points
// cache, log and instrument validation the same way. The engine in
// [validate] stays pure; everything with side effects lives here.
//
// # Usage
//
//	src, _ := source.New(cfg.Files)
//	runner := pipeline.NewRunner(src, fileCache, nil, logger)
//	runner.Workers = cfg.WorkerCount()
//
//	results, err := runner.ValidateAll(ctx, []string{"data/2023", "data/2024"}, pipeline.Options{})
//	for _, res := range results {
//	    if res.Err != nil || !res.Report.OK() {
//	        // ...
//	    }
//	}
package pipeline

import (
	"time"

	"github.com/matzehuels/taxocheck/pkg/validate"
)

// Options controls one validation run.
type Options struct {
	// Refresh skips cache reads. Fresh reports are still written.
	Refresh bool

	// Names overrides the table names taken from the source.
	Names validate.Names
}

// Stats records timings and sizes of one run.
type Stats struct {
	LoadTime     time.Duration `json:"load_time"`
	ValidateTime time.Duration `json:"validate_time"`
	Rows         int           `json:"rows"`
	NodeCount    int           `json:"nodes"`
	EdgeCount    int           `json:"edges"`
}

// Result is the outcome of validating one folder.
type Result struct {
	// RunID uniquely identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	// Dir is the folder validated, empty for inline input.
	Dir string `json:"dir,omitempty"`

	// InputHash is the SHA-256 of the canonical input, also the cache key seed.
	InputHash string `json:"input_hash"`

	Report   *validate.Report `json:"report,omitempty"`
	Stats    Stats            `json:"stats"`
	CacheHit bool             `json:"cache_hit"`

	// Input is the loaded taxonomy; nil on a failed load.
	Input *validate.Input `json:"-"`

	// Err is set by [Runner.ValidateAll] when this folder failed to load.
	Err error `json:"-"`
}

// OK reports whether the folder loaded and validated without error findings.
func (r *Result) OK() bool { return r.Err == nil && r.Report != nil && r.Report.OK() }
