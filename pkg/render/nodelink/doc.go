// Package nodelink renders taxonomy graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph drawings using Graphviz, where each
// indicator code is a box and each composition edge an arrow from parent to
// child. It is the visual companion to the textual findings: cycle edges and
// nodes of disconnected clusters can be highlighted so a reviewer sees where
// the taxonomy breaks.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: witness})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Highlight: edges drawn in red (typically a cycle witness)
//   - Muted: nodes drawn with dashed outlines (typically orphan clusters)
//
// # DOT Format
//
// [ToDOT] emits nodes and edges in sorted order, so the DOT text for a given
// graph is stable and can be diffed or committed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required for SVG. PDF and PNG go
// through rsvg-convert.
package nodelink
