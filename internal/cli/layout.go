package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtree/pkg/graph"
	"github.com/matzehuels/radialtree/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.yaml]",
		Short: "Compute a radial layout for a graph",
		Long: `Compute a radial layout for a graph.

The graph file lists nodes with an id, a radius value and an angle value, plus
edges as [from, to] pairs or {from, to} objects. Each node is snapped to the
nearest free slot on a grid of concentric rings and each edge becomes an arc
along the shorter way around the circle.

Options come from ./radialtree.toml (or --config) and flags override them.
The output is JSON, YAML, or Graphviz DOT with pinned node positions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, format, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, yaml, dot (default: from output extension)")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output, format string, noCache bool) error {
	g, err := pipeline.ReadGraphFile(ctx, input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	outputPath, format := layoutOutput(input, output, format)
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Laying out %d nodes...", len(g.Nodes)))
	res, err := runner.Layout(ctx, g, opts)
	if err != nil {
		spin.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := pipeline.Export(ctx, res.Layout, format)
	if err != nil {
		return err
	}
	if outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if res.Layout.Partial() {
		printWarning("Layout is partial")
		for _, is := range res.Layout.Issues {
			printDetail("%s", issueLine(is))
		}
	} else {
		printSuccess("Layout complete")
	}
	printFile(outputPath)
	printStats(res.Stats, res.CacheHit)
	if format != pipeline.FormatDOT {
		printNextStep("Inspect", appName+" inspect "+outputPath)
	}

	return nil
}

// layoutOutput picks the output path and format. An explicit format wins;
// otherwise the output extension decides, defaulting to JSON next to input.
func layoutOutput(input, output, format string) (string, string) {
	if output == "" {
		if format == "" {
			format = pipeline.FormatJSON
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + ".layout." + format, format
	}
	if format == "" {
		if output == "-" {
			return output, pipeline.FormatJSON
		}
		format = pipeline.FormatFromPath(output)
	}
	return output, format
}

// issueLine formats an issue for terminal output.
func issueLine(is graph.Issue) string {
	switch {
	case is.From != "":
		return fmt.Sprintf("%s: %s → %s (%s)", is.Kind, is.From, is.To, is.Detail)
	case is.Node != "":
		return fmt.Sprintf("%s: %s (%s)", is.Kind, is.Node, is.Detail)
	default:
		return fmt.Sprintf("%s: %s", is.Kind, is.Detail)
	}
}
