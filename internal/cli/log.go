// Package cli implements the taxocheck command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Structural
// findings go to stdout; logs go to stderr.
//
// # Commands
//
// The main commands are:
//   - validate: Check one or more taxonomy folders, exit non-zero on findings
//   - tree, leaves: Query the hierarchy of a folder
//   - render: Draw the hierarchy as DOT, SVG, PDF or PNG
//   - explore: Browse codes and their subtrees interactively
//   - serve: Run the HTTP API
//   - cache: Manage the report cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Validated 3 folders (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
