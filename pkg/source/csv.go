package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

// CSV reads a description table and a composition table from two CSV files.
type CSV struct {
	files config.Files
}

// NewCSV creates a CSV source for the file and column names in files.
func NewCSV(files config.Files) *CSV { return &CSV{files: files} }

// Names returns the two CSV file names.
func (s *CSV) Names() validate.Names {
	return validate.Names{Description: s.files.Description, Composition: s.files.Composition}
}

// Load reads both tables from dir.
func (s *CSV) Load(ctx context.Context, dir string) (*validate.Input, error) {
	in := &validate.Input{}

	err := s.read(ctx, dir, s.files.Description, []string{s.files.CodeColumn}, func(row []string) {
		if v := cell(row[0]); v != nil {
			in.Description = append(in.Description, code.Of(v))
		}
	})
	if err != nil {
		return nil, err
	}

	err = s.read(ctx, dir, s.files.Composition, []string{s.files.ParentColumn, s.files.ChildColumn}, func(row []string) {
		if p, ok := Row(cell(row[0]), cell(row[1])); ok {
			in.Composition = append(in.Composition, p)
		}
	})
	if err != nil {
		return nil, err
	}
	return in, nil
}

// read streams the named columns of every data row of dir/name to fn.
func (s *CSV) read(ctx context.Context, dir, name string, columns []string, fn func(row []string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := readFile(dir, name)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.comma()
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return errors.New(errors.ErrCodeInvalidFormat, "%s: empty file", name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: read header", name)
	}

	idx, err := columnIndexes(header, columns)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", name)
	}

	picked := make([]string, len(idx))
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", name)
		}
		for i, j := range idx {
			if j < len(rec) {
				picked[i] = rec[j]
			} else {
				picked[i] = ""
			}
		}
		fn(picked)
	}
}

func (s *CSV) comma() rune {
	if s.files.Delimiter == "" {
		return ','
	}
	return []rune(s.files.Delimiter)[0]
}

// columnIndexes locates each wanted column in header. Matching ignores case,
// surrounding space and a UTF-8 byte order mark.
func columnIndexes(header, want []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make([]int, len(want))
	var missing []string
	for i, w := range want {
		j, ok := pos[strings.ToLower(strings.TrimSpace(w))]
		if !ok {
			missing = append(missing, w)
			continue
		}
		idx[i] = j
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s) %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func joinPath(dir, name string) string { return filepath.Join(dir, name) }
