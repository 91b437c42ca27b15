package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/render/nodelink"
)

// Output formats supported by the render command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// renderCommand creates the render command for drawing the hierarchy.
func (c *CLI) renderCommand() *cobra.Command {
	var output, format string
	var scale float64

	cmd := &cobra.Command{
		Use:   "render <dir>",
		Short: "Draw the composition hierarchy",
		Long: `Render draws every composition edge as a node-link diagram. Edges of a
detected cycle are drawn in red and codes outside the main structure are
dashed.

The format follows the output extension unless --format is given. PDF and
PNG need rsvg-convert on PATH.`,
		Example: `  taxocheck render data/2024 -o taxonomy.svg
  taxocheck render data/2024 -o taxonomy.png --scale 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(output, format)
			if err != nil {
				return err
			}
			g, _, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			dot := nodelink.ToDOT(g, diagramOptions(g))
			var data []byte
			switch f {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				data, err = nodelink.RenderSVG(cmd.Context(), dot)
			case formatPDF:
				data, err = nodelink.RenderPDF(cmd.Context(), dot)
			case formatPNG:
				data, err = nodelink.RenderPNG(cmd.Context(), dot, scale)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}

			if output == "" || output == "-" {
				_, err = stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %d codes", g.NodeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "dot, svg, pdf or png (default from extension, else dot)")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "PNG scale factor")

	return cmd
}

// diagramOptions highlights the cycle witness and mutes every component
// except the main one.
func diagramOptions(g *dag.Graph) nodelink.Options {
	var opts nodelink.Options
	if found, witness := dag.DetectCycle(g); found {
		opts.Highlight = witness
	}
	for _, sub := range dag.FindDisconnected(g) {
		opts.Muted = append(opts.Muted, sub.Nodes()...)
	}
	code.Sort(opts.Muted)
	return opts
}

// outputFormat resolves the explicit format or the one implied by path.
func outputFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if format == "" {
			format = formatDOT
		}
	}
	switch format {
	case formatDOT, formatSVG, formatPDF, formatPNG:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (use dot, svg, pdf or png)", format)
}
