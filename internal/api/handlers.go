package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/taxocheck/pkg/buildinfo"
	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/pipeline"
	"github.com/matzehuels/taxocheck/pkg/render"
	"github.com/matzehuels/taxocheck/pkg/source"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

// TaxonomyRequest is the body of every /v1 endpoint.
type TaxonomyRequest struct {
	Description []any `json:"description"`
	Composition []struct {
		Parent any `json:"parent"`
		Child  any `json:"child"`
	} `json:"composition"`
	Names   validate.Names `json:"names"`
	Refresh bool           `json:"refresh"`
}

// input converts the request into engine input with the same typing rules
// as the JSON source.
func (req *TaxonomyRequest) input() *validate.Input {
	in := &validate.Input{Description: []code.Code{}, Composition: []dag.Pair{}}
	for _, v := range req.Description {
		if t := source.Typed(v); t != nil {
			in.Description = append(in.Description, code.Of(t))
		}
	}
	for _, row := range req.Composition {
		if p, ok := source.Row(source.Typed(row.Parent), source.Typed(row.Child)); ok {
			in.Composition = append(in.Composition, p)
		}
	}
	return in
}

// TreeResponse is the body returned by /v1/tree.
type TreeResponse struct {
	Root     code.Code   `json:"root"`
	Edges    []dag.Edge  `json:"edges"`
	Rendered string      `json:"rendered"`
	Leaves   []code.Code `json:"leaves"`
}

// LeavesResponse is the body returned by /v1/leaves.
type LeavesResponse struct {
	Leaves []code.Code `json:"leaves"`
	Count  int         `json:"count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.runner.ValidateInput(r.Context(), req.input(), pipeline.Options{
		Names:   req.Names,
		Refresh: req.Refresh,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	if root == "" {
		root = code.Root.String()
	}
	if err := errors.ValidateCode(root); err != nil {
		s.respondError(w, r, err)
		return
	}

	req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	g := dag.Build(req.input().Composition)
	t, err := dag.Subtree(g, code.Of(root))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	edges := t.Edges()
	writeJSON(w, http.StatusOK, TreeResponse{
		Root:     t.Root,
		Edges:    edges,
		Rendered: render.Edges(edges),
		Leaves:   dag.Leaves(t.Graph),
	})
}

func (s *Server) handleLeaves(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	leaves := dag.Leaves(dag.Build(req.input().Composition))
	if leaves == nil {
		leaves = []code.Code{}
	}
	writeJSON(w, http.StatusOK, LeavesResponse{Leaves: leaves, Count: len(leaves)})
}

// decode reads a TaxonomyRequest, bounded by the configured body limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*TaxonomyRequest, error) {
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	var req TaxonomyRequest
	dec := json.NewDecoder(body)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	if req.Composition == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "composition is required")
	}
	return &req, nil
}
