package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtree/pkg/graph"
	"github.com/matzehuels/radialtree/pkg/pipeline"
)

// gridCommand creates the grid command, which previews ring geometry
// without any nodes.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		flags  layoutFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Preview the ring and slot grid for a set of options",
		Long: `Preview the ring and slot grid for a set of options.

Prints one row per ring with its screen radius, slot count and the arc length
between neighbouring slots. Use it to tune --inner-radius, --radius-step and
--angle-step before laying out a large graph. With --format the empty grid is
written to stdout as json, yaml or dot instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runGrid(cmd.Context(), opts, format, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "write the grid as json, yaml or dot instead of a table")

	return cmd
}

func (c *CLI) runGrid(ctx context.Context, opts pipeline.Options, format string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	l, cached, err := runner.Grid(ctx, opts)
	if err != nil {
		return err
	}

	if format != "" {
		data, err := pipeline.Export(ctx, l, format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Println(renderRingTable(l))
	printKeyValue("Rings", strconv.Itoa(len(l.Rings)))
	printKeyValue("Capacity", strconv.Itoa(l.Geometry.Capacity))
	printKeyValue("Ring step", fmt.Sprintf("%.2f", l.Geometry.RadiusStep))
	printKeyValue("Center", fmt.Sprintf("%.1f, %.1f", l.Center.X, l.Center.Y))
	if cached {
		printDetail("from cache")
	}
	return nil
}

// renderRingTable renders one row per ring.
func renderRingTable(l graph.Layout) string {
	rows := make([][]string, len(l.Rings))
	for i, r := range l.Rings {
		arc := "—"
		if r.SlotCount > 0 {
			arc = fmt.Sprintf("%.1f", 2*math.Pi*r.ScreenRadius/float64(r.SlotCount))
		}
		rows[i] = []string{
			strconv.Itoa(r.Index),
			fmt.Sprintf("%.1f", r.ScreenRadius),
			strconv.Itoa(r.SlotCount),
			arc,
			fmt.Sprintf("%d–%d", r.FirstSlot, r.FirstSlot+r.SlotCount-1),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Ring", "Radius", "Slots", "Arc", "Indices").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	return t.Render()
}
