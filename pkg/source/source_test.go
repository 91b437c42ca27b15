package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/errors"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func edges(t *testing.T, pairs []dag.Pair) []dag.Edge {
	t.Helper()
	return dag.Build(pairs).Edges()
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"   ", nil},
		{"7", int64(7)},
		{" 2.0 ", 2.0},
		{"2.5", 2.5},
		{"A.1", "A.1"},
		{"NaN", "NaN"},
		{" nan ", "nan"},
		{"Inf", "Inf"},
		{"-Infinity", "-Infinity"},
		{"1e400", "1e400"},
		{"12345678901234567890", "12345678901234567890"},
		{"-12345678901234567890", "-12345678901234567890"},
		{"9007199254740993.0", "9007199254740993.0"},
		{"9007199254740991.0", 9007199254740991.0},
	}
	for _, tt := range tests {
		if got := cell(tt.in); got != tt.want {
			t.Errorf("cell(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestTyped(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"  ", nil},
		{"2.0", 2.0},
		{" 7 ", int64(7)},
		{"A.1", "A.1"},
		{json.Number("2.0"), 2.0},
		{json.Number("12345678901234567890"), "12345678901234567890"},
		{true, true},
	}
	for _, tt := range tests {
		if got := Typed(tt.in); got != tt.want {
			t.Errorf("Typed(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestCSV_LargeIntegerCodes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"description.csv": "code\n1\n12345678901234567890\n12345678901234567891\n",
		"composition.csv": "parent,child\n,1\n1,12345678901234567890\n1,12345678901234567891\n",
	})

	src, err := New(config.Default().Files)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	in, err := src.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	g := dag.Build(in.Composition)
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4 (%v)", g.NodeCount(), g.Nodes())
	}
	for _, c := range []code.Code{"12345678901234567890", "12345678901234567891"} {
		if !g.HasNode(c) {
			t.Errorf("HasNode(%s) = false, want true", c)
		}
	}
}

func TestCSV_Load(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"description.csv": "code,label\n1,Total\n2.0,Part\n\n3,Other\n",
		"composition.csv": "Parent, Child \n,1\n1,2\n1.0,3\n",
	})

	src, err := New(config.Default().Files)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	in, err := src.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := []code.Code{"1", "2", "3"}; !slices.Equal(in.Description, want) {
		t.Errorf("Description = %v, want %v", in.Description, want)
	}
	want := []dag.Edge{{From: "0", To: "1"}, {From: "1", To: "2"}, {From: "1", To: "3"}}
	if got := edges(t, in.Composition); !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
	if src.Names().Composition != "composition.csv" {
		t.Errorf("Names().Composition = %q", src.Names().Composition)
	}
}

func TestCSV_Delimiter(t *testing.T) {
	files := config.Default().Files
	files.Delimiter = ";"
	dir := writeFiles(t, map[string]string{
		"description.csv": "code;name\n1;a\n",
		"composition.csv": "parent;child\n0;1\n",
	})

	in, err := NewCSV(files).Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(in.Composition) != 1 || len(in.Description) != 1 {
		t.Errorf("Load() = %+v, want one row per table", in)
	}
}

func TestCSV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantCode errors.Code
	}{
		{
			name:     "missing description",
			files:    map[string]string{"composition.csv": "parent,child\n0,1\n"},
			wantCode: errors.ErrCodeFileNotFound,
		},
		{
			name: "missing code column",
			files: map[string]string{
				"description.csv": "id\n1\n",
				"composition.csv": "parent,child\n0,1\n",
			},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name: "missing child column",
			files: map[string]string{
				"description.csv": "code\n1\n",
				"composition.csv": "parent,kid\n0,1\n",
			},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name: "empty composition",
			files: map[string]string{
				"description.csv": "code\n1\n",
				"composition.csv": "",
			},
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSV(config.Default().Files).Load(context.Background(), writeFiles(t, tt.files))
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCSV_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCSV(config.Default().Files).Load(ctx, t.TempDir()); err != context.Canceled {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestJSON_Load(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"taxonomy.json": `{
			"description": [1, 2.0, "A", ""],
			"composition": [
				{"parent": null, "child": 1},
				{"parent": 1, "child": 2.0},
				{"parent": "1.0", "child": "A"},
				{"parent": 9007199254740993, "child": null}
			]
		}`,
	})

	files := config.Default().Files
	files.Format = config.FormatJSON
	src, err := New(files)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	in, err := src.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := []code.Code{"1", "2", "A"}; !slices.Equal(in.Description, want) {
		t.Errorf("Description = %v, want %v", in.Description, want)
	}
	want := []dag.Edge{{From: "0", To: "1"}, {From: "1", To: "2"}, {From: "1", To: "A"}}
	if got := edges(t, in.Composition); !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
}

func TestJSON_Errors(t *testing.T) {
	files := config.Default().Files
	files.Format = config.FormatJSON

	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"description": [`},
		{"missing composition", `{"description": [1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"taxonomy.json": tt.content})
			_, err := NewJSON(files).Load(context.Background(), dir)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Load() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestNew_Unsupported(t *testing.T) {
	files := config.Default().Files
	files.Format = "xlsx"
	if _, err := New(files); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("New() error = %v, want UNSUPPORTED", err)
	}
}
