// Package source loads taxonomy tables from a folder into engine input.
//
// A taxonomy folder holds either two CSV tables (description and composition)
// or one combined JSON document. Sources check that the required columns
// exist, type every cell the way a spreadsheet reader would (integer, then
// float, then text) and canonicalize it with [code.Of]. An empty parent cell
// becomes [code.Root]; no other package handles the literal sentinel.
//
// Sources never judge the structure; that is [validate.Validate]'s job.
package source

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

// Source reads the taxonomy stored in a folder.
type Source interface {
	// Load reads dir and returns the engine input.
	Load(ctx context.Context, dir string) (*validate.Input, error)

	// Names labels the tables in finding messages.
	Names() validate.Names
}

// New returns the source matching files.Format.
func New(files config.Files) (Source, error) {
	switch files.Format {
	case config.FormatCSV, "":
		return NewCSV(files), nil
	case config.FormatJSON:
		return NewJSON(files), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported source format %q", files.Format)
	}
}

// maxExactFloat is the first integer a float64 can no longer tell apart from
// its neighbour.
const maxExactFloat = 1 << 53

// cell types a raw text cell: integers first, then floats, then trimmed text.
// An empty cell returns nil. Text that a number cannot hold exactly stays
// text: integers beyond int64, integral floats from 2^53 up, NaN and Inf.
func cell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	if f == math.Trunc(f) && math.Abs(f) >= maxExactFloat {
		return s
	}
	return f
}

// Typed types a value decoded by a json.Decoder with UseNumber the same way
// CSV cells are typed: numbers and numeric-looking strings become int64 or
// float64, blank strings nil. "2.0" is the same code in either source.
func Typed(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case json.Number:
		return cell(x.String())
	case string:
		return cell(x)
	default:
		return v
	}
}

// Row builds a composition pair from typed cells, mapping an absent parent
// to [code.Root]. It reports false when the child is absent.
func Row(parent, child any) (dag.Pair, bool) {
	if child == nil {
		return dag.Pair{}, false
	}
	if parent == nil {
		parent = code.Root
	}
	return dag.Pair{Parent: parent, Child: child}, true
}

func readFile(dir, name string) (*os.File, error) {
	f, err := os.Open(joinPath(dir, name))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found in %s", name, dir)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", name)
	}
	return f, nil
}
