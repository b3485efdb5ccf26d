// Package tui provides the BubbleTea-based live volume meter.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/volctl/internal/output"
)

// Source reads the current normalized volume.
type Source func(ctx context.Context) (float64, error)

// Options configures the meter.
type Options struct {
	Title    string        // Header text, e.g. "music via pulse"
	Interval time.Duration // Poll interval
	Timeout  time.Duration // Per-read timeout

	// Changes, when set, pushes volume values between polls (for example
	// from VolumeChanged signals). Polling continues as the fallback.
	Changes <-chan float64
}

// Model is the volume meter model.
type Model struct {
	source Source
	opts   Options

	bar  progress.Model
	help help.Model
	keys KeyMap

	volume   float64
	hasValue bool
	err      error
	paused   bool
	updated  time.Time
	width    int

	// gen identifies the live poll chain. Refresh and resume start a new
	// chain; ticks and readings from older chains schedule nothing.
	gen int
}

// readingMsg carries one poll result.
type readingMsg struct {
	gen    int
	volume float64
	err    error
	at     time.Time
}

// tickMsg triggers the next poll.
type tickMsg struct {
	gen int
	at  time.Time
}

// changeMsg carries a pushed volume value.
type changeMsg struct {
	volume float64
	at     time.Time
}

// NewModel creates a meter that polls source.
func NewModel(source Source, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}

	return Model{
		source: source,
		opts:   opts,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:   help.New(),
		keys:   DefaultKeyMap(),
	}
}

// Init starts the first read and, if configured, listens for changes.
func (m Model) Init() tea.Cmd {
	if m.opts.Changes == nil {
		return m.read()
	}
	return tea.Batch(m.read(), m.waitForChange())
}

// read polls the source once on behalf of the current chain.
func (m Model) read() tea.Cmd {
	gen, source, timeout := m.gen, m.source, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		v, err := source(ctx)
		return readingMsg{gen: gen, volume: v, err: err, at: time.Now()}
	}
}

// tick schedules the next poll for the current chain.
func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// waitForChange blocks until the next pushed value. A closed channel ends
// the listener and leaves polling in charge.
func (m Model) waitForChange() tea.Cmd {
	changes := m.opts.Changes
	return func() tea.Msg {
		v, ok := <-changes
		if !ok {
			return nil
		}
		return changeMsg{volume: v, at: time.Now()}
	}
}

// restart begins a new poll chain, orphaning any pending tick.
func (m Model) restart() (Model, tea.Cmd) {
	m.gen++
	return m, m.read()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.restart()
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused {
				return m.restart()
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(msg.Width-12, 10)
		m.help.Width = msg.Width
		return m, nil

	case readingMsg:
		m.updated = msg.at
		m.err = msg.err
		if msg.err == nil {
			m.volume = msg.volume
			m.hasValue = true
		}
		if m.paused || msg.gen != m.gen {
			return m, nil
		}
		return m, m.tick()

	case tickMsg:
		if m.paused || msg.gen != m.gen {
			return m, nil
		}
		return m, m.read()

	case changeMsg:
		if !m.paused {
			m.volume = msg.volume
			m.hasValue = true
			m.err = nil
			m.updated = msg.at
		}
		return m, m.waitForChange()
	}

	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View renders the meter.
func (m Model) View() string {
	title := m.opts.Title
	if title == "" {
		title = "volume"
	}

	s := titleStyle.Render(title)
	if m.paused {
		s += dimStyle.Render(" (paused)")
	}
	s += "\n\n"

	if m.hasValue {
		s += m.bar.ViewAs(m.volume) + " " + valueStyle.Render(fmt.Sprintf("%6s", output.Percent(m.volume)))
	} else {
		s += dimStyle.Render("waiting for first reading...")
	}
	s += "\n"

	if m.err != nil {
		s += "\n" + errStyle.Render("error: "+m.err.Error()) + "\n"
	}

	if !m.updated.IsZero() {
		s += "\n" + dimStyle.Render("updated "+m.updated.Format("15:04:05")) + "\n"
	}

	s += "\n" + m.help.View(m.keys)
	return s
}

// Volume returns the last successful reading.
func (m Model) Volume() (float64, bool) {
	return m.volume, m.hasValue
}

// Err returns the error from the last read, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the meter on the terminal.
func Run(source Source, opts Options) error {
	p := tea.NewProgram(NewModel(source, opts))
	_, err := p.Run()
	return err
}
