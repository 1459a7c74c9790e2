package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trunnel/pkg/config"
	"github.com/matzehuels/trunnel/pkg/io"
)

// rangesCommand creates the ranges command, which lists the adjustable
// dimensions and their bounds for a data set.
func (c *CLI) rangesCommand() *cobra.Command {
	var (
		items  int
		asJSON bool
	)
	flags := newChartFlags()

	cmd := &cobra.Command{
		Use:   "ranges [data file]",
		Short: "List the valid range of every adjustable dimension",
		Long: `List the valid range of every adjustable dimension.

The leaf count is bounded by the number of items, taken from the data file
or from --items when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				t, err := io.Import(args[0], io.Options{
					Format:         flags.inputFormat,
					CategoryColumn: flags.categoryColumn,
					MeasureColumn:  flags.measureColumn,
				})
				if err != nil {
					return fmt.Errorf("load data: %w", err)
				}
				items = t.Len()
			}
			s, err := flags.loadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			ranges := config.ValidRanges(items)
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(ranges)
			}
			fmt.Fprintln(c.out, rangesTable(ranges, s))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&items, "items", 0, "item count when no data file is given")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// rangesTable renders the ranges with the current value of each setting.
// Values outside their range are highlighted.
func rangesTable(ranges []config.Range, s config.Settings) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(ranges))
	outside := make([]bool, len(ranges))
	for i, r := range ranges {
		v := r.Get(s)
		outside[i] = v < r.Min || v > r.Max
		rows[i] = []string{r.Name, r.Format(r.Min), r.Format(r.Max), r.Format(r.Step), r.Format(v)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Setting", "Min", "Max", "Step", "Current").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 4 && row >= 0 && row < len(outside) && outside[row] {
				return base.Foreground(colorYellow).Bold(true)
			}
			if col == 0 {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorCyan)
		})
	return t.Render()
}
