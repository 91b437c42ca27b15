// Package pkg provides the core libraries for taxocheck, a structure validator
// for hierarchical indicator taxonomies.
//
// # Overview
//
// A taxonomy folder holds a description table (the declared codes) and a
// composition table (parent/child rows). taxocheck builds a directed graph over
// the codes, checks that it forms a single rooted tree over exactly the
// declared codes, and reports every violation it finds.
//
// The pkg directory is organized into three areas:
//
//  1. Domain logic: [code], [dag], [integrity], [validate]
//  2. Presentation: [render], [render/nodelink]
//  3. Infrastructure: [source], [cache], [config], [pipeline], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	description.csv + composition.csv
//	         ↓
//	    [source] package (read rows, type cells)
//	         ↓
//	    [dag] package (build graph, cycles, components, tree)
//	         ↓
//	    [validate] package (aggregate findings into a Report)
//	         ↓
//	    text, JSON or DOT/SVG/PDF/PNG output
//
// [pipeline.Runner] ties the stages together with caching and bounded
// concurrency. Both the CLI and the HTTP API use it.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/taxocheck/pkg/code"
//	    "github.com/matzehuels/taxocheck/pkg/dag"
//	    "github.com/matzehuels/taxocheck/pkg/validate"
//	)
//
//	rep := validate.Validate(validate.Input{
//	    Description: codes,
//	    Composition: []dag.Pair{{Parent: code.Root, Child: 1}, {Parent: 1, Child: 1.1}},
//	}, validate.Names{})
//	for _, f := range rep.Findings {
//	    fmt.Println(f.Message)
//	}
package pkg
