package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/errors"
	"github.com/matzehuels/taxocheck/pkg/render"
)

// loadGraph reads dir through the configured source and builds its graph.
func (c *CLI) loadGraph(cmd *cobra.Command, dir string) (*dag.Graph, []code.Code, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, nil, err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	runner, err := c.newRunner(cmd.Context(), cfg, true)
	if err != nil {
		return nil, nil, err
	}
	defer runner.Close()

	in, err := runner.Load(cmd.Context(), dir)
	if err != nil {
		return nil, nil, err
	}
	return dag.Build(in.Composition), in.Description, nil
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var root string
	var flat bool

	cmd := &cobra.Command{
		Use:   "tree <dir>",
		Short: "Print the breadth-first tree below a code",
		Example: `  taxocheck tree data/2024
  taxocheck tree data/2024 --root 1.2 --flat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateCode(root); err != nil {
				return err
			}
			g, _, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := dag.Subtree(g, code.Of(root))
			if err != nil {
				return err
			}
			if flat {
				_, err = fmt.Fprintln(stdout, render.Edges(t.Edges()))
				return err
			}
			return render.Outline(stdout, t)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", code.Root.String(), "code to start from")
	cmd.Flags().BoolVar(&flat, "flat", false, "print the tree edges on one line")

	return cmd
}

// leavesCommand creates the leaves command.
func (c *CLI) leavesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leaves <dir>",
		Short: "List codes without children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			for _, l := range dag.Leaves(g) {
				if _, err := fmt.Fprintln(stdout, code.Format(l)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
