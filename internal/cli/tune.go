package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trunnel/pkg/config"
	"github.com/matzehuels/trunnel/pkg/pipeline"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
)

var (
	tuneSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuneNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	tuneDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tuneBarStyle      = lipgloss.NewStyle().Foreground(colorCyan)
)

const tuneBarWidth = 24

// tuneCommand creates the tune command, an interactive settings editor.
func (c *CLI) tuneCommand() *cobra.Command {
	var save string
	flags := newChartFlags()

	cmd := &cobra.Command{
		Use:   "tune [data file]",
		Short: "Adjust chart settings interactively",
		Long: `Adjust chart settings interactively.

Every change re-runs the layout, so the leaf count slider is always bounded
by the current item count and clamping is visible immediately. Press s to
write the settings file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			popts.Logger = nil
			if save == "" {
				save = flags.settingsPath
			}
			if save == "" {
				save = appName + ".toml"
			}

			m := newTuneModel(cmd.Context(), pipeline.NewRunner(nil, discardLogger()), popts, save)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if tm, ok := final.(tuneModel); ok && tm.saved {
				printSuccess("Saved settings")
				printFile(tm.savePath)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&save, "save", "s", "", "settings file to write (default: --config or trunnel.toml)")

	return cmd
}

// tuneModel is the bubbletea model for the settings editor.
type tuneModel struct {
	ctx      context.Context
	runner   *pipeline.Runner
	opts     pipeline.Options
	savePath string

	cursor int
	plan   layout.Plan
	err    error
	saved  bool
	status string
}

func newTuneModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, savePath string) tuneModel {
	opts.SetLayoutDefaults()
	m := tuneModel{ctx: ctx, runner: runner, opts: opts, savePath: savePath}
	m.relayout()
	return m
}

// ranges bounds the leaf count by the item count of the last plan.
func (m tuneModel) ranges() []config.Range {
	return config.ValidRanges(m.runner.MaxLeafCount())
}

func (m *tuneModel) relayout() {
	items, err := m.runner.Extract(m.ctx, m.opts)
	if err != nil {
		m.err = err
		return
	}
	plan, err := m.runner.Layout(m.ctx, items, m.opts)
	m.plan, m.err = plan, err
}

// adjust moves the selected setting by steps, snapped to the range's step.
func (m *tuneModel) adjust(steps float64) {
	r := m.ranges()[m.cursor]
	perStep := math.Round(1 / r.Step)
	r.Set(&m.opts.Settings, math.Round(r.Get(m.opts.Settings)*perStep+steps)/perStep)
	m.status = ""
	m.relayout()
}

func (m tuneModel) Init() tea.Cmd {
	return nil
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ranges())-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "r":
		m.opts.Settings = config.Default()
		m.status = "reset to defaults"
		m.relayout()
	case "s":
		if err := m.opts.Settings.Save(m.savePath); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.saved = true
			m.status = "saved " + m.savePath
		}
	}
	return m, nil
}

func (m tuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tune Trunnel"))
	b.WriteString("\n")
	b.WriteString(tuneDimStyle.Render("↑/↓ select  ←/→ adjust  r reset  s save  q quit"))
	b.WriteString("\n\n")

	for i, r := range m.ranges() {
		v := r.Get(m.opts.Settings)
		cursor, style := "  ", tuneNormalStyle
		if i == m.cursor {
			cursor, style = "▸ ", tuneSelectedStyle
		}
		fmt.Fprintf(&b, "%s%s %s %s\n",
			cursor,
			style.Render(fmt.Sprintf("%-26s", r.Name)),
			tuneBarStyle.Render(bar(v, r.Min, r.Max, tuneBarWidth)),
			style.Render(r.Format(v)))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	} else {
		p := m.plan
		fmt.Fprintf(&b, "  %s\n", StyleDim.Render(fmt.Sprintf("%d items · %d branches · %d leaves · %d ribbons",
			p.ItemCount, p.BranchCount, p.LeafCount, len(p.Ribbons))))
		fmt.Fprintf(&b, "  %s\n", StyleDim.Render(fmt.Sprintf("trunk %sx%s at y=%s",
			layout.FormatNumber(p.Geometry.TrunkWidth), layout.FormatNumber(p.Geometry.TrunkHeight), layout.FormatNumber(p.Geometry.TrunkTop))))
		for _, d := range p.Degenerate {
			b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(string(d)) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + StyleDim.Render(m.status) + "\n")
	}
	return b.String()
}

// bar draws v's position within [lo, hi] as a fixed-width gauge.
func bar(v, lo, hi float64, width int) string {
	if hi <= lo {
		return strings.Repeat("─", width)
	}
	filled := int((v-lo)/(hi-lo)*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("─", width-filled)
}
