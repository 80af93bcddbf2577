package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg updates the dump meter. Maximum stays zero until the device
// has announced the dump length.
type ProgressMsg struct {
	Current uint32
	Maximum uint32
}

// finishMsg ends the meter program.
type finishMsg struct{}

// dumpModel is the Bubble Tea model behind the dump progress meter.
type dumpModel struct {
	label   string
	bar     progress.Model
	current uint32
	maximum uint32
	done    bool
}

func newDumpModel(label string) dumpModel {
	width := TerminalWidth() - 30
	if width < 20 {
		width = 20
	}
	if width > 50 {
		width = 50
	}
	return dumpModel{
		label: label,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(width),
		),
	}
}

// Init implements tea.Model
func (m dumpModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m dumpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.current = msg.Current
		m.maximum = msg.Maximum
		return m, nil
	case finishMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// The download cannot be interrupted cleanly from the meter;
		// ignore keys.
		return m, nil
	}
	return m, nil
}

// View implements tea.Model
func (m dumpModel) View() string {
	percent := 0.0
	if m.maximum > 0 {
		percent = float64(m.current) / float64(m.maximum)
		if percent > 1 {
			percent = 1
		}
	}

	view := fmt.Sprintf("%s %s %s",
		LabelStyle.Render(m.label),
		m.bar.ViewAs(percent),
		LabelStyle.Render(fmt.Sprintf("%d/%d bytes", m.current, m.maximum)),
	)
	if m.done {
		view += "\n"
	}
	return view
}

// DumpProgress drives the meter from the download goroutine.
type DumpProgress struct {
	program *tea.Program
	done    chan struct{}
}

// StartDumpProgress starts the meter, or returns nil on a non-TTY stdout.
// A nil *DumpProgress is safe to use; its methods do nothing.
func StartDumpProgress(label string) *DumpProgress {
	if !IsTerminal() {
		return nil
	}

	p := tea.NewProgram(newDumpModel(label))
	d := &DumpProgress{program: p, done: make(chan struct{})}

	go func() {
		defer close(d.done)
		_, _ = p.Run()
	}()

	return d
}

// Update feeds the meter a new progress value.
func (d *DumpProgress) Update(current, maximum uint32) {
	if d == nil {
		return
	}
	d.program.Send(ProgressMsg{Current: current, Maximum: maximum})
}

// Finish ends the meter and waits for the terminal to be restored.
func (d *DumpProgress) Finish() {
	if d == nil {
		return
	}
	d.program.Send(finishMsg{})
	<-d.done
}
