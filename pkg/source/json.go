package source

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

// JSON reads both tables from a single document:
//
//	{
//	  "description": [1, 2, "A"],
//	  "composition": [{"parent": 0, "child": 1}, {"parent": null, "child": 2}]
//	}
//
// A null or empty parent maps to [code.Root].
type JSON struct {
	files config.Files
}

// NewJSON creates a JSON source reading files.Taxonomy.
func NewJSON(files config.Files) *JSON { return &JSON{files: files} }

// Names labels both tables after the document and its key.
func (s *JSON) Names() validate.Names {
	return validate.Names{
		Description: s.files.Taxonomy + "#description",
		Composition: s.files.Taxonomy + "#composition",
	}
}

type taxonomyDoc struct {
	Description []any `json:"description"`
	Composition []struct {
		Parent any `json:"parent"`
		Child  any `json:"child"`
	} `json:"composition"`
}

// Load reads dir/<taxonomy>.
func (s *JSON) Load(ctx context.Context, dir string) (*validate.Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := readFile(dir, s.files.Taxonomy)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc taxonomyDoc
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: decode", s.files.Taxonomy)
	}
	if doc.Description == nil || doc.Composition == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"%s: both \"description\" and \"composition\" are required", s.files.Taxonomy)
	}

	in := &validate.Input{}
	for _, v := range doc.Description {
		if t := Typed(v); t != nil {
			in.Description = append(in.Description, code.Of(t))
		}
	}
	for _, row := range doc.Composition {
		if p, ok := Row(Typed(row.Parent), Typed(row.Child)); ok {
			in.Composition = append(in.Composition, p)
		}
	}
	return in, nil
}
