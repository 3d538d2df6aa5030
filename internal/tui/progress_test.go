// internal/tui/progress_test.go
package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/genbench/genbench/internal/bench"
)

func TestProgressModelUpdate(t *testing.T) {
	t.Parallel()

	m := newProgressModel()

	updated, cmd := m.Update(ProgressMsg{
		Version: "current", Script: "customers.xml",
		Count: 1000, Workers: 4, Iteration: 1,
		Completed: 1, Total: 4,
	})
	pm := updated.(progressModel)
	if !pm.started {
		t.Fatalf("expected model to be marked started after a progress update")
	}
	if cmd == nil {
		t.Fatalf("expected a progress bar command after a progress update")
	}
	if pm.current.Script != "customers.xml" || pm.current.Completed != 1 {
		t.Fatalf("unexpected current progress: %+v", pm.current)
	}

	view := pm.View()
	for _, want := range []string{"customers.xml", "count=1000", "num_process=4", "(1/4)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelDone(t *testing.T) {
	t.Parallel()

	m := newProgressModel()
	wantErr := errors.New("run failed")

	updated, cmd := m.Update(DoneMsg{Err: wantErr})
	pm := updated.(progressModel)
	if !pm.done {
		t.Fatalf("expected model to be done after DoneMsg")
	}
	if !errors.Is(pm.err, wantErr) {
		t.Fatalf("expected stored error %v, got %v", wantErr, pm.err)
	}
	if cmd == nil {
		t.Fatalf("expected quit command after DoneMsg")
	}
	if got := pm.View(); got != "" {
		t.Fatalf("expected empty view when done, got %q", got)
	}
}

func TestProgressModelIgnoresZeroTotal(t *testing.T) {
	t.Parallel()

	m := newProgressModel()
	updated, cmd := m.Update(ProgressMsg(bench.Progress{Total: 0, Completed: 0}))
	if cmd != nil {
		t.Fatalf("expected no progress command for zero total")
	}
	if updated.(progressModel).done {
		t.Fatalf("zero-total update should not finish the model")
	}
}

func TestProgressModelQuitsOnCtrlC(t *testing.T) {
	t.Parallel()

	m := newProgressModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command on ctrl+c")
	}
}
