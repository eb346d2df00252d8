// Package tui is the interactive, paged to-do list.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/coord"
	"github.com/Makepad-fr/tada/internal/notify"
	"github.com/Makepad-fr/tada/internal/paging"
	"github.com/Makepad-fr/tada/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
	confirming
)

// opDoneMsg reports that a dispatched action finished.
type opDoneMsg struct {
	act coord.Action
	err error
}

// tickMsg wakes the model so expired notifications disappear.
type tickMsg time.Time

// Model is the Bubble Tea model over one session.
type Model struct {
	ctx   context.Context
	app   *coord.App
	queue *notify.Queue
	now   func() time.Time

	keys  keyMap
	help  help.Model
	input textinput.Model

	mode     mode
	selected int
	targetID string // item being edited or confirmed
	inFlight int
	width    int
}

// New builds the model. The queue must be the app's notifier.
func New(ctx context.Context, app *coord.App, q *notify.Queue) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 500
	h := help.New()
	h.Styles.ShortDesc = ui.HelpStyle
	h.Styles.FullDesc = ui.HelpStyle
	return Model{
		ctx:   ctx,
		app:   app,
		queue: q,
		now:   time.Now,
		keys:  defaultKeys(),
		help:  h,
		input: ti,
		width: 80,
	}
}

// Run starts the program full screen and returns when the user quits.
func Run(ctx context.Context, app *coord.App, q *notify.Queue) error {
	p := tea.NewProgram(New(ctx, app, q), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// dispatch runs act off the event loop.
func (m Model) dispatch(act coord.Action) tea.Cmd {
	ctx, app := m.ctx, m.app
	return func() tea.Msg {
		return opDoneMsg{act: act, err: app.Dispatch(ctx, act)}
	}
}

func dismissLater() tea.Cmd {
	return tea.Tick(notify.DismissAfter, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) rows() []coord.Row { return m.app.View().Rows }

func (m Model) current() (coord.Row, bool) {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return coord.Row{}, false
	}
	return rows[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, nil

	case opDoneMsg:
		m.inFlight--
		switch act := msg.act.(type) {
		case coord.Create:
			if msg.err == nil {
				m.selected = 0
			}
		case coord.Edit:
			if m.app.EditState(act.ID) == coord.Viewing {
				m.mode = browsing
				m.input.Blur()
			}
		}
		m.clampSelection()
		return m, dismissLater()

	case tea.KeyMsg:
		switch m.mode {
		case adding, editing:
			return m.updateInput(msg)
		case confirming:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		m.inFlight++
		if m.mode == adding {
			m.mode = browsing
			m.input.SetValue("")
			m.input.Blur()
			return m, m.dispatch(coord.Create{Text: text})
		}
		return m, m.dispatch(coord.Edit{ID: m.targetID, Text: text})
	case "esc":
		if m.mode == editing {
			m.app.CancelEdit(m.targetID)
		}
		m.mode = browsing
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = browsing
		m.inFlight++
		return m, m.dispatch(coord.Delete{ID: m.targetID, Confirm: coord.Confirmed})
	case "n", "N", "esc", "q":
		m.mode = browsing
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows())-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Prev):
		m.app.Navigate(paging.Prev())
		m.clampSelection()
	case key.Matches(msg, m.keys.Next):
		m.app.Navigate(paging.Next())
		m.clampSelection()
	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.current(); ok {
			m.inFlight++
			return m, m.dispatch(coord.Toggle{ID: r.Item.ID, Done: !r.Done})
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = adding
		m.input.SetValue("")
		m.input.Placeholder = "New to-do..."
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		if r, ok := m.current(); ok {
			if err := m.app.BeginEdit(r.Item.ID); err != nil {
				return m, dismissLater()
			}
			m.mode = editing
			m.targetID = r.Item.ID
			m.input.SetValue(r.Item.Text)
			m.input.CursorEnd()
			m.input.Placeholder = "Edit to-do..."
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.current(); ok {
			m.mode = confirming
			m.targetID = r.Item.ID
		}
	case key.Matches(msg, m.keys.Bigger):
		m.inFlight++
		return m, m.dispatch(coord.SetPageSize{Size: m.app.Cursor().PageSize + 1})
	case key.Matches(msg, m.keys.Smaller):
		if size := m.app.Cursor().PageSize; size > 1 {
			m.inFlight++
			return m, m.dispatch(coord.SetPageSize{Size: size - 1})
		}
	case key.Matches(msg, m.keys.Reload):
		m.inFlight++
		return m, m.dispatch(coord.Reload{})
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.app.Navigate(paging.PageNumber(int(s[0] - '0')))
			m.clampSelection()
		}
	}
	return m, nil
}

func (m Model) View() string {
	v := m.app.View()
	now := m.now()

	var b strings.Builder
	b.WriteString(ui.Header(m.app.Owner(), v.Stats))
	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render(ui.ProgressBar(v.Stats.Done, v.Stats.Total, 28)))
	b.WriteString("\n\n")

	if v.Empty {
		b.WriteString(ui.MutedStyle.Render("No to-dos yet. Press a to add the first one!"))
		b.WriteString("\n")
	}
	for i, r := range v.Rows {
		prefix := "  "
		if i == m.selected {
			prefix = ui.SelectedStyle.Render("> ")
		}
		line := ui.ItemLine(r.Index, r.Item, r.Done, now)
		if r.State == coord.Editing {
			line += " " + ui.AccentStyle.Render("(editing)")
		}
		b.WriteString(prefix + line + "\n")
	}
	if len(v.Buttons) > 0 {
		b.WriteString("\n" + ui.PageButtons(v.Buttons) + "\n")
	}

	switch m.mode {
	case adding, editing:
		title := "Add new to-do"
		if m.mode == editing {
			title = "Edit to-do"
		}
		b.WriteString("\n" + ui.Frame(title+"\n"+m.input.View()) + "\n")
	case confirming:
		b.WriteString("\n" + ui.WarnStyle.Render(coord.DeletePrompt+" [y/N]") + "\n")
	}

	for _, t := range m.queue.Active(now) {
		b.WriteString("\n" + toastLine(t))
	}
	if m.inFlight > 0 {
		b.WriteString("\n" + ui.MutedStyle.Render("working..."))
	}

	b.WriteString("\n" + ui.MutedStyle.Render(fmt.Sprintf("page %d/%d · %d per page", v.Cursor.Page, v.PageCount, v.Cursor.PageSize)))
	b.WriteString("\n" + m.help.View(m.keys))
	return ui.Frame(b.String())
}

func toastLine(t notify.Toast) string {
	switch t.Kind {
	case notify.Error:
		return ui.ErrorStyle.Render("✖ " + t.Message)
	case notify.Warning:
		return ui.WarnStyle.Render("! " + t.Message)
	}
	return ui.SuccessStyle.Render("✔ " + t.Message)
}
