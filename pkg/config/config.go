// Package config loads taxocheck settings from TOML or YAML files.
//
// A [Config] is an explicit value: load it once with [Load] and hand it to the
// constructors that need it. Nothing in this module reads configuration from
// package-level state.
//
// Example taxocheck.toml:
//
//	workers = 4
//
//	[files]
//	format = "csv"
//	description = "description.csv"
//	composition = "composition.csv"
//	code_column = "code"
//	parent_column = "parent"
//	child_column = "child"
//
//	[cache]
//	enabled = true
//	backend = "file"
//	ttl = "24h"
//
//	[server]
//	addr = "127.0.0.1:8080"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/taxocheck/pkg/errors"
)

// Source formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the complete taxocheck configuration.
type Config struct {
	// Workers bounds how many folders are validated concurrently.
	// Zero means runtime.NumCPU().
	Workers int `toml:"workers" yaml:"workers" json:"workers" validate:"gte=0,lte=256"`

	Files  Files  `toml:"files" yaml:"files" json:"files"`
	Cache  Cache  `toml:"cache" yaml:"cache" json:"cache"`
	Server Server `toml:"server" yaml:"server" json:"server"`
}

// Files describes where the two tables live inside a taxonomy folder and how
// to read them.
type Files struct {
	Format string `toml:"format" yaml:"format" json:"format" validate:"required,oneof=csv json"`

	// Description and Composition name the CSV files.
	Description string `toml:"description" yaml:"description" json:"description" validate:"required_if=Format csv"`
	Composition string `toml:"composition" yaml:"composition" json:"composition" validate:"required_if=Format csv"`

	// Taxonomy names the combined JSON file.
	Taxonomy string `toml:"taxonomy" yaml:"taxonomy" json:"taxonomy" validate:"required_if=Format json"`

	CodeColumn   string `toml:"code_column" yaml:"code_column" json:"code_column" validate:"required"`
	ParentColumn string `toml:"parent_column" yaml:"parent_column" json:"parent_column" validate:"required"`
	ChildColumn  string `toml:"child_column" yaml:"child_column" json:"child_column" validate:"required,nefield=ParentColumn"`

	// Delimiter is the CSV field separator.
	Delimiter string `toml:"delimiter" yaml:"delimiter" json:"delimiter" validate:"len=1"`
}

// Cache configures the report cache.
type Cache struct {
	Enabled bool          `toml:"enabled" yaml:"enabled" json:"enabled"`
	Backend string        `toml:"backend" yaml:"backend" json:"backend" validate:"oneof=file redis"`
	Dir     string        `toml:"dir" yaml:"dir" json:"dir"`
	TTL     time.Duration `toml:"ttl" yaml:"ttl" json:"ttl" validate:"gte=0"`

	RedisAddr string `toml:"redis_addr" yaml:"redis_addr" json:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB   int    `toml:"redis_db" yaml:"redis_db" json:"redis_db" validate:"gte=0,lte=15"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr" yaml:"addr" json:"addr" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout" json:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout" json:"write_timeout" validate:"gte=0"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes" json:"max_body_bytes" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Files: Files{
			Format:       FormatCSV,
			Description:  "description.csv",
			Composition:  "composition.csv",
			Taxonomy:     "taxonomy.json",
			CodeColumn:   "code",
			ParentColumn: "parent",
			ChildColumn:  "child",
			Delimiter:    ",",
		},
		Cache: Cache{
			Enabled: true,
			Backend: BackendFile,
			TTL:     24 * time.Hour,
		},
		Server: Server{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 32 << 20,
		},
	}
}

// Load reads the file at path over [Default] and validates the result.
// The format follows the extension: .toml, .yaml or .yml. An empty path
// returns the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

var validate = validator.New()

// Validate checks struct constraints and that every configured file name is
// a plain basename.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid configuration")
	}

	names := []string{c.Files.Taxonomy}
	if c.Files.Format == FormatCSV {
		names = []string{c.Files.Description, c.Files.Composition}
	}
	for _, name := range names {
		if err := errors.ValidateFileName(name); err != nil {
			return err
		}
	}
	return nil
}

// WorkerCount returns Workers, or runtime.NumCPU() when unset.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// formatValidationError reports the first failed constraint by field path.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	if e.Param() != "" {
		return fmt.Errorf("%s: failed %s=%s", e.Namespace(), e.Tag(), e.Param())
	}
	return fmt.Errorf("%s: failed %s", e.Namespace(), e.Tag())
}
