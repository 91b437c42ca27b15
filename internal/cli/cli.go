// Package cli implements the taxocheck command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taxocheck/pkg/buildinfo"
	"github.com/matzehuels/taxocheck/pkg/cache"
	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/observability"
	"github.com/matzehuels/taxocheck/pkg/pipeline"
	"github.com/matzehuels/taxocheck/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "taxocheck"

	// configFileName is looked up in the working directory when --config is unset.
	configFileName = "taxocheck.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "taxocheck validates hierarchical indicator taxonomies",
		Long: `taxocheck certifies that a description table and a composition table jointly
encode a sound hierarchy: no cycles, a single connected structure, and every
code declared exactly where it is used.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml); defaults to ./"+configFileName+" if present")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.leavesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads --config, or ./taxocheck.toml when present, over the defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(configFileName); err == nil {
			path = configFileName
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	src, err := source.New(cfg.Files)
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}

	r := pipeline.NewRunner(src, store, nil, c.Logger)
	r.Workers = cfg.WorkerCount()
	r.TTL = cfg.Cache.TTL
	if c.Logger.GetLevel() <= log.DebugLevel {
		r.Hooks = observability.NewLogHooks(c.Logger)
	}
	return r, nil
}

// newCache opens the configured backend. A file cache that cannot be created
// degrades to no caching; an unreachable Redis is an error.
func (c *CLI) newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Enabled {
		return cache.NewNullCache(), nil
	}

	if cfg.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	}

	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/taxocheck/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
