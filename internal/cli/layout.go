package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trunnel/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints the computed plan.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	flags := newChartFlags()

	cmd := &cobra.Command{
		Use:   "layout [data file]",
		Short: "Print the chart plan (geometry, scales, ribbon paths) as JSON",
		Long: `Compute the chart plan without drawing it.

The JSON output carries the effective viewport and settings, any clamping
adjustments, the derived geometry, the four scales, and one entry per ribbon
with its path, lead-in, stroke width and colour. It is the same document as
'render -f json' and is meant for external renderers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), popts, output)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, popts pipeline.Options, output string) error {
	runner := pipeline.NewRunner(nil, loggerFromContext(ctx))
	popts.Formats = []string{pipeline.FormatJSON}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	data := result.Artifacts[pipeline.FormatJSON]

	if output == "" || output == "-" {
		_, err := c.out.Write(append(data, '\n'))
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	printSuccess("Wrote plan with %d ribbons", len(result.Plan.Ribbons))
	printFile(output)
	return nil
}
