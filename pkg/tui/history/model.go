// Package history is the terminal browser for past journal entries.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/tui/theme"
	"tableflip.dev/reflectly/pkg/views"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeEdit
	modeConfirmDelete
)

// refreshMsg is sent when the journal changes outside the event loop.
type refreshMsg struct{}

// Model contains UI state. The entries themselves live in the History view.
type Model struct {
	history *views.History
	mode    mode
	cursor  int
	editor  textarea.Model
	theme   theme.Theme

	status string
	err    error

	width  int
	height int
}

// New creates a browser over h.
func New(h *views.History) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your reflection"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(8)

	return Model{
		history: h,
		mode:    modeList,
		editor:  ta,
		theme:   theme.Default(),
		status:  "j/k move, enter open, q quit",
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(msg.Width-4, 20))
		return m, nil
	case refreshMsg:
		m.sync()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
	}
	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sync reconciles the mode and cursor with the history view after the
// journal changed.
func (m *Model) sync() {
	if n := len(m.history.Entries()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.mode != modeList {
		if _, ok := m.history.Selected(); !ok {
			m.mode = modeList
			m.editor.Blur()
			m.status = "entry was removed"
		}
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.history.Entries()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(entries)-1, 0)
	case "enter", "l", "right":
		if len(entries) == 0 {
			return m, nil
		}
		if err := m.history.Open(entries[m.cursor].ID); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.mode = modeDetail
		m.status = "e edit, d delete, esc back"
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "h", "left", "q":
		m.history.Close()
		m.mode = modeList
		m.status = "j/k move, enter open, q quit"
	case "e", "i":
		if err := m.history.BeginEdit(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.editor.SetValue(m.history.Draft())
		m.mode = modeEdit
		m.status = "ctrl+s save, esc cancel"
		return m, m.editor.Focus()
	case "d", "x":
		m.mode = modeConfirmDelete
		m.status = "delete this entry? y/n"
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.history.Cancel()
		m.editor.Blur()
		m.editor.Reset()
		m.err = nil
		m.mode = modeDetail
		m.status = "edit discarded"
		return m, nil
	case "ctrl+s":
		m.history.SetDraft(m.editor.Value())
		if _, err := m.history.Save(); err != nil {
			m.err = err
			if errors.Is(err, views.ErrEmptyContent) {
				return m, nil
			}
			m.editor.Blur()
			m.sync()
			return m, nil
		}
		m.err = nil
		m.editor.Blur()
		m.editor.Reset()
		m.mode = modeDetail
		m.status = "saved"
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.history.Delete(); err != nil {
			m.err = err
		} else {
			m.err = nil
		}
		m.mode = modeList
		m.sync()
		m.status = "deleted"
	default:
		m.mode = modeDetail
		m.status = "e edit, d delete, esc back"
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.mode {
	case modeList:
		body = m.listView()
	default:
		body = m.detailView()
	}
	footer := m.theme.Footer.Status.Render(m.status)
	if m.err != nil {
		footer = m.theme.Footer.Error.Render(m.err.Error()) + "  " + footer
	}
	return body + "\n\n" + footer
}

func (m Model) listView() string {
	entries := m.history.Entries()
	var b strings.Builder
	b.WriteString(m.theme.List.Title.Render(fmt.Sprintf("History (%d)", len(entries))))
	b.WriteString("\n\n")
	if len(entries) == 0 {
		b.WriteString(m.theme.List.Date.Render("No entries yet."))
		return b.String()
	}

	start, end := window(m.cursor, len(entries), max(m.height-6, 3))
	for i := start; i < end; i++ {
		line := m.row(entries[i])
		if i == m.cursor {
			line = m.theme.List.Selected.Render("→ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) row(e entry.Entry) string {
	return fmt.Sprintf("%s  %s  %s",
		m.theme.List.Date.Render(e.Date.Local().Format("Jan 02 2006 15:04")),
		moodBadge(e.Mood),
		e.Title(max(m.width-30, 10)))
}

func (m Model) detailView() string {
	e, ok := m.history.Selected()
	if !ok {
		return m.listView()
	}
	header := fmt.Sprintf("%s  %s",
		m.theme.Panel.Title.Render(e.Date.Local().Format("Monday, January 2 2006 15:04")),
		moodBadge(e.Mood))

	var content string
	switch m.mode {
	case modeEdit:
		content = m.editor.View()
	default:
		content = wordwrap.String(e.Content, max(m.width-6, 20))
	}
	body := header + "\n\n" + m.theme.Panel.Frame.Render(content)
	if m.mode == modeConfirmDelete {
		prompt := m.theme.Modal.Title.Render("Delete this entry?") + "\n" + "y to delete, any other key to keep"
		body += "\n\n" + m.theme.Modal.Frame.Render(prompt)
	}
	return body
}

func moodBadge(label string) string {
	m, ok := mood.Lookup(label)
	if !ok {
		return label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(printers.ScoreColor(m.Score))).Render(m.Emoji + " " + m.Key)
}

// window returns the slice of rows to show so that cursor stays visible.
func window(cursor, n, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

// Run starts the browser over j and blocks until the user quits.
func Run(ctx context.Context, j *journal.Store) error {
	h := views.NewHistory(j)
	defer h.Stop()

	p := tea.NewProgram(New(h), tea.WithAltScreen(), tea.WithContext(ctx))

	// Changes made from the event loop are published on it, so Send must
	// not block here.
	cancel := j.Subscribe(func(journal.Snapshot) {
		go p.Send(refreshMsg{})
	})
	defer cancel()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}
