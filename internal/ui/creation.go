// Package ui renders the creation-stage progress shown before a
// program runs. Interactive terminals get a Bubble Tea view; plain
// writers get one line per stage.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Stages are the seven steps announced before execution. Rest lingers
// a little longer than the others.
var Stages = []string{
	"Creation of light",
	"Separation of waters",
	"Land and vegetation",
	"Celestial bodies",
	"Sea creatures and birds",
	"Land animals and mankind",
	"Rest",
}

func stageDelay(i int) time.Duration {
	if i == len(Stages)-1 {
		return 700 * time.Millisecond
	}
	return 300 * time.Millisecond
}

// StageEvent reports one stage finishing.
type StageEvent struct {
	Index int
}

// RunCreationStages plays the stage sequence. Interactive mode drives
// a Bubble Tea program; otherwise each stage is printed as it
// completes.
func RunCreationStages(w io.Writer, interactive bool) error {
	events := make(chan StageEvent)
	go func() {
		defer close(events)
		for i := range Stages {
			time.Sleep(stageDelay(i))
			events <- StageEvent{Index: i}
		}
	}()

	if !interactive {
		for ev := range events {
			fmt.Fprintf(w, "%s... done\n", Stages[ev.Index])
		}
		return nil
	}

	model := newCreationModel(events)
	_, err := tea.NewProgram(model, tea.WithOutput(w)).Run()
	return err
}

type creationModel struct {
	events  <-chan StageEvent
	spinner spinner.Model
	prog    progress.Model
	current int
	width   int
	done    bool
}

type stageMsg StageEvent
type stagesDoneMsg struct{}

func newCreationModel(events <-chan StageEvent) *creationModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 60

	return &creationModel{
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *creationModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *creationModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return stagesDoneMsg{}
		}
		return stageMsg(ev)
	}
}

func (m *creationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stageMsg:
		m.current = msg.Index + 1
		pct := float64(m.current) / float64(len(Stages))
		return m, tea.Batch(m.prog.SetPercent(pct), m.listen())
	case stagesDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *creationModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	header := "In the beginning"
	if m.done {
		header = "It was very good"
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := m.width - 8
	if nameWidth < 20 {
		nameWidth = 20
	}
	for i, stage := range Stages {
		mark := " "
		if i < m.current {
			mark = doneStyle.Render("✓")
		} else if i == m.current && !m.done {
			mark = m.spinner.View()
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, truncate(stage, nameWidth)))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
