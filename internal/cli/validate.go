package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	taxerrors "github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/pipeline"
)

// ErrFindings is returned when at least one folder has error findings or
// failed to load. Its message has already been printed.
var ErrFindings = errors.New("validation failed")

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	workers int  // concurrent folders (0 = config)
	noCache bool // disable the report cache
	refresh bool // ignore cached reports but write fresh ones
	json    bool // print results as JSON
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate <dir>...",
		Short: "Validate taxonomy folders",
		Long: `Validate checks each folder's taxonomy for cycles, disconnected structures,
codes used but never declared, and codes declared but never used.

The exit status is non-zero when any folder has findings or cannot be read.`,
		Example: `  taxocheck validate data/2024
  taxocheck validate data/* --workers 8 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "folders validated concurrently (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached reports")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, dirs []string, opts validateOpts) error {
	for _, d := range dirs {
		if err := taxerrors.ValidatePath(d); err != nil {
			return err
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	if opts.workers > 0 {
		runner.Workers = opts.workers
	}

	prog := newProgress(c.Logger)
	var spin *Spinner
	if !opts.json && isatty.IsTerminal(os.Stderr.Fd()) {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Validating %d folder(s)...", len(dirs)))
		spin.Start()
	}
	results, err := runner.ValidateAll(ctx, dirs, pipeline.Options{Refresh: opts.refresh})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Validated %d folder(s)", len(results)))

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonResults(results)); err != nil {
			return err
		}
	} else {
		printResults(results)
	}

	for _, res := range results {
		if !res.OK() {
			return ErrFindings
		}
	}
	return nil
}

// jsonResult adds the load error, which Result does not serialize.
type jsonResult struct {
	*pipeline.Result
	Error string `json:"error,omitempty"`
}

func jsonResults(results []*pipeline.Result) []jsonResult {
	out := make([]jsonResult, len(results))
	for i, res := range results {
		out[i] = jsonResult{Result: res}
		if res.Err != nil {
			out[i].Error = taxerrors.UserMessage(res.Err)
		}
	}
	return out
}

func printResults(results []*pipeline.Result) {
	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			printError("%s", res.Dir)
			printDetail("%v", res.Err)
		case res.Report.OK():
			printSuccess("%s", res.Dir)
			printStats(res.Report.Summary, res.CacheHit)
		default:
			failed++
			printError("%s: %d finding(s)", res.Dir, len(res.Report.Findings))
			for _, f := range res.Report.Findings {
				printFinding(f)
			}
			printStats(res.Report.Summary, res.CacheHit)
		}
	}

	if failed == 0 {
		return
	}
	if len(results) > 1 {
		printWarning("%d of %d folders failed", failed, len(results))
	}
	if len(results) > 0 && results[0].Err == nil {
		printNextStep("Inspect the hierarchy", "taxocheck render "+results[0].Dir+" -o taxonomy.svg")
	}
}
