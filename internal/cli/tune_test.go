package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/trunnel/pkg/config"
	"github.com/matzehuels/trunnel/pkg/pipeline"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
)

func tuneTestModel(t *testing.T, leaves int) tuneModel {
	t.Helper()
	s := config.Default()
	s.Dimensions.LeavesCount = leaves
	opts := pipeline.Options{
		Categories: []extract.Category{"Search", "Social", "Email", "Checkout", "Abandon"},
		Measures:   []float64{40, 25, 15, 50, 30},
		Settings:   s,
		Width:      400,
		Height:     300,
	}
	runner := pipeline.NewRunner(nil, discardLogger())
	return newTuneModel(context.Background(), runner, opts, filepath.Join(t.TempDir(), "trunnel.toml"))
}

func press(t *testing.T, m tuneModel, keys ...string) tuneModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(tuneModel)
	}
	return m
}

func TestTuneLeafCountBoundedByItems(t *testing.T) {
	m := tuneTestModel(t, 2)
	if m.err != nil {
		t.Fatalf("initial layout: %v", m.err)
	}
	if got := m.runner.MaxLeafCount(); got != 5 {
		t.Fatalf("MaxLeafCount() = %d, want 5", got)
	}

	m = press(t, m, "down", "down", "down")
	if name := m.ranges()[m.cursor].Name; name != "dimensions.leaves_count" {
		t.Fatalf("selected %q, want dimensions.leaves_count", name)
	}

	m = press(t, m, "right")
	if m.plan.LeafCount != 3 {
		t.Errorf("LeafCount after one step = %d, want 3", m.plan.LeafCount)
	}

	m = press(t, m, "right", "right", "right", "right", "right")
	if got := m.opts.Settings.Dimensions.LeavesCount; got != 5 {
		t.Errorf("LeavesCount = %d, want clamp at 5", got)
	}
	if m.plan.BranchCount != 0 {
		t.Errorf("BranchCount = %d, want 0", m.plan.BranchCount)
	}
}

func TestTuneFractionSteps(t *testing.T) {
	m := tuneTestModel(t, 2)
	m = press(t, m, "right")
	if got := m.opts.Settings.Dimensions.TrunkWidth; got != 0.55 {
		t.Errorf("TrunkWidth = %v, want 0.55", got)
	}
	m = press(t, m, "left", "left", "left", "left", "left", "left", "left", "left")
	if got := m.opts.Settings.Dimensions.TrunkWidth; got != 0.2 {
		t.Errorf("TrunkWidth = %v, want clamp at 0.2", got)
	}
	if !strings.Contains(m.View(), "dimensions.trunk_width") {
		t.Error("View() missing trunk width row")
	}
}

func TestTuneCursorStaysInRange(t *testing.T) {
	m := tuneTestModel(t, 0)
	m = press(t, m, "up", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	m = press(t, m, "j", "j", "j", "j", "j", "j")
	if want := len(m.ranges()) - 1; m.cursor != want {
		t.Errorf("cursor = %d, want %d", m.cursor, want)
	}
}

func TestTuneResetAndSave(t *testing.T) {
	m := tuneTestModel(t, 4)
	m = press(t, m, "r")
	if m.opts.Settings != config.Default() {
		t.Errorf("settings after reset = %+v, want defaults", m.opts.Settings)
	}

	m = press(t, m, "down", "down", "down", "l", "s")
	if !m.saved {
		t.Fatalf("saved = false, status %q", m.status)
	}
	got, err := config.Load(m.savePath, config.LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("Load saved settings: %v", err)
	}
	if got.Dimensions.LeavesCount != 1 {
		t.Errorf("saved LeavesCount = %d, want 1", got.Dimensions.LeavesCount)
	}
}

func TestTuneQuit(t *testing.T) {
	m := tuneTestModel(t, 2)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%q did not return a quit command", k.String())
		}
	}
}

func TestTuneViewShowsDegeneracy(t *testing.T) {
	m := tuneTestModel(t, 0)
	if !strings.Contains(m.View(), "NO_LEAVES") {
		t.Errorf("View() missing NO_LEAVES:\n%s", m.View())
	}
}
