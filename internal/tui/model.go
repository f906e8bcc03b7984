// Package tui is a bubbletea dashboard for a running search: a progress
// bar, a scrolling log of found seeds, and a keybinding to copy the most
// recent match to the clipboard. Styling and the copy-to-clipboard
// keybinding follow the CLI's own bubbletea front end.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seedsearch/pkg/seedsearch/search"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFF00")).
			Padding(0, 2).
			Bold(true).
			Width(70)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4B5563")).
			Padding(0, 2).
			Width(70)

	logViewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9CA3AF"))

	copyNoticeStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#10B981")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 2).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// eventMsg wraps a search.Event as a bubbletea message.
type eventMsg search.Event

// doneMsg signals the search goroutine finished (summary and/or error).
type doneMsg struct {
	summary search.Summary
	err     error
}

// Model is the dashboard's bubbletea state.
type Model struct {
	bar      progress.Model
	log      viewport.Model
	logLines []string
	lastLine string

	lastSeed   int32
	haveLast   bool
	found      int
	checked    int64
	total      int64
	copyNotice string
	done       bool
	errText    string
	events     chan search.Event
	doneCh     chan doneMsg
}

// NewModel builds the dashboard and starts the search in the background.
func NewModel(ctx context.Context, run func(ctx context.Context, sink search.Sink) (search.Summary, error)) Model {
	events := make(chan search.Event, 256)
	doneCh := make(chan doneMsg, 1)

	sink := search.EventSink{Emit: func(ev search.Event) { events <- ev }}
	go func() {
		summary, err := run(ctx, sink)
		close(events)
		doneCh <- doneMsg{summary: summary, err: err}
	}()

	logView := viewport.New(60, 12)
	logView.Style = logViewStyle

	return Model{
		bar:    progress.New(progress.WithDefaultGradient()),
		log:    logView,
		events: events,
		doneCh: doneCh,
	}
}

func waitForEvent(events chan search.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func waitForDone(doneCh chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-doneCh
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), waitForDone(m.doneCh))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "y":
			if m.haveLast {
				if err := clipboard.WriteAll(fmt.Sprintf("%d", m.lastSeed)); err == nil {
					m.copyNotice = fmt.Sprintf("copied seed %d to clipboard", m.lastSeed)
				}
			}
		}
		return m, nil

	case eventMsg:
		switch msg.Type {
		case "start":
			m.total = msg.Total
		case "progress":
			m.checked = msg.Checked
			m.total = msg.Total
			m.lastLine = fmt.Sprintf("%.1f%% — %.0f seeds/s — %ds elapsed", msg.Progress, msg.Speed, int(msg.Elapsed))
		case "found":
			m.found++
			m.lastSeed = msg.Seed
			m.haveLast = true
			m.logLines = append(m.logLines, fmt.Sprintf("seed %d", msg.Seed))
			m.log.SetContent(strings.Join(m.logLines, "\n"))
			m.log.GotoBottom()
		case "complete":
			m.done = true
		}
		return m, waitForEvent(m.events)

	case doneMsg:
		m.done = true
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("seedsearch — weather seed search") + "\n\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.checked) / float64(m.total)
	}
	b.WriteString(m.bar.ViewAs(pct) + "\n")
	b.WriteString(helpStyle.Render(m.lastLine) + "\n\n")

	b.WriteString(m.log.View() + "\n")
	b.WriteString(fmt.Sprintf("found: %d\n", m.found))

	if m.copyNotice != "" {
		b.WriteString(copyNoticeStyle.Render(m.copyNotice) + "\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render("error: "+m.errText) + "\n")
	}
	if m.done {
		b.WriteString(footerStyle.Render("search complete — press q to exit") + "\n")
	} else {
		b.WriteString(footerStyle.Render("y: copy last seed   q: quit") + "\n")
	}
	return b.String()
}
