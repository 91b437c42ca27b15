package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/taxocheck/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Files.Format != FormatCSV {
		t.Errorf("Files.Format = %q, want %q", cfg.Files.Format, FormatCSV)
	}
	if cfg.WorkerCount() < 1 {
		t.Errorf("WorkerCount() = %d, want >= 1", cfg.WorkerCount())
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "taxocheck.toml", `
workers = 3

[files]
description = "indicators.csv"
composition = "structure.csv"
delimiter = ";"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "2h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 3 || cfg.WorkerCount() != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Files.Description != "indicators.csv" {
		t.Errorf("Files.Description = %q, want indicators.csv", cfg.Files.Description)
	}
	if cfg.Files.CodeColumn != "code" {
		t.Errorf("Files.CodeColumn = %q, want default kept", cfg.Files.CodeColumn)
	}
	if cfg.Files.Delimiter != ";" {
		t.Errorf("Files.Delimiter = %q, want ;", cfg.Files.Delimiter)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Cache.Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h", cfg.Cache.TTL)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "taxocheck.yaml", `
files:
  format: json
  taxonomy: tree.json
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Files.Format != FormatJSON {
		t.Errorf("Files.Format = %q, want json", cfg.Files.Format)
	}
	if cfg.Files.Taxonomy != "tree.json" {
		t.Errorf("Files.Taxonomy = %q, want tree.json", cfg.Files.Taxonomy)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.Code
	}{
		{"unknown format", "taxocheck.toml", "[files]\nformat = \"xlsx\"\n", errors.ErrCodeInvalidConfig},
		{"same columns", "taxocheck.toml", "[files]\nparent_column = \"x\"\nchild_column = \"x\"\n", errors.ErrCodeInvalidConfig},
		{"redis without addr", "taxocheck.yml", "cache:\n  backend: redis\n", errors.ErrCodeInvalidConfig},
		{"negative workers", "taxocheck.yml", "workers: -1\n", errors.ErrCodeInvalidConfig},
		{"path in file name", "taxocheck.toml", "[files]\ndescription = \"../secret.csv\"\n", errors.ErrCodeInvalidConfig},
		{"bad toml", "taxocheck.toml", "workers = [", errors.ErrCodeInvalidConfig},
		{"unsupported extension", "taxocheck.ini", "workers=1", errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}
