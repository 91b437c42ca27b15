// Package render turns taxonomy graphs into text and pictures.
//
// # Edge Lists
//
// Findings are compared as exact strings, so their text must not depend on
// traversal order. [Edges] renders every edge as "A -> B" using
// [code.Format], sorts the strings ascending and joins them with ", ".
// [Codes] does the same for a list of codes.
//
//	render.Edges([]dag.Edge{{From: "2.0", To: "3.0"}}) // "2 -> 3"
//
// # Outlines
//
// [Outline] writes an indented tree, one code per line, for terminal output.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the hierarchy as a Graphviz diagram.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//
// [code.Format]: github.com/matzehuels/taxocheck/pkg/code.Format
// [nodelink]: github.com/matzehuels/taxocheck/pkg/render/nodelink
package render
