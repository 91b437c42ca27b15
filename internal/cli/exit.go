package cli

import (
	"context"
	"errors"

	taxerrors "github.com/matzehuels/taxocheck/pkg/errors"
)

// Exit statuses returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130 // shell convention for SIGINT
)

// ExitCode maps the error returned by the root command to a process status.
// Findings and load failures are 1, caller misuse such as an unknown --root
// or a malformed code is 2.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrFindings):
		return ExitFailure
	case taxerrors.IsUsage(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}
