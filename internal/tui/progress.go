// internal/tui/progress.go
// Package tui renders a live progress view for benchmark runs.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/genbench/genbench/internal/bench"
)

// ProgressMsg carries one runner update into the UI.
type ProgressMsg bench.Progress

// DoneMsg signals that the benchmark run finished.
type DoneMsg struct {
	Err error
}

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

type progressModel struct {
	spinner  spinner.Model
	progress progress.Model
	current  bench.Progress
	started  bool
	done     bool
	err      error
}

func newProgressModel() progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = labelStyle
	return progressModel{
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case ProgressMsg:
		m.current = bench.Progress(msg)
		m.started = true
		if m.current.Total <= 0 {
			return m, nil
		}
		return m, m.progress.SetPercent(float64(m.current.Completed) / float64(m.current.Total))

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	header := m.spinner.View() + labelStyle.Render(" Running benchmarks...")
	if !m.started {
		return header + "\n"
	}
	detail := detailStyle.Render(fmt.Sprintf(
		"[%s] %s count=%d num_process=%d iteration=%d (%d/%d)",
		m.current.Version, m.current.Script, m.current.Count,
		m.current.Workers, m.current.Iteration, m.current.Completed, m.current.Total,
	))
	return header + "\n" + detail + "\n" + m.progress.View() + "\n"
}

// RunProgress drives the progress UI while collect executes in the
// background. The collect callback receives a ProgressFunc that feeds the
// display; its error is returned after the UI shuts down.
func RunProgress(collect func(bench.ProgressFunc) error) error {
	p := tea.NewProgram(newProgressModel())

	go func() {
		err := collect(func(update bench.Progress) {
			p.Send(ProgressMsg(update))
		})
		p.Send(DoneMsg{Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(progressModel); ok {
		return m.err
	}
	return nil
}
