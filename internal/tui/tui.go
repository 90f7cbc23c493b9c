// Package tui is the full-screen view over a store.Store.
//
// The view never mutates todos itself: every gesture becomes a store
// command, and the screen is rebuilt from the snapshot the store publishes.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada-live/internal/logging"
	"github.com/idilsaglam/tada-live/internal/store"
	"github.com/idilsaglam/tada-live/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	barWidth      = 20
	// title, input, footer, panel border
	chromeHeight = 8
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Options tune the view.
type Options struct {
	Placeholder string
	CharLimit   int
	Logger      *log.Logger
}

// Model is the Bubble Tea root model.
type Model struct {
	store  *store.Store
	bridge *bridge
	log    *log.Logger

	snap store.Snapshot

	list  list.Model
	input textinput.Model
	keys  keyMap
	focus focus

	width, height int
}

// New builds the root model and subscribes it to s.
// Call Close when the model is no longer used.
func New(s *store.Store, opt Options) Model {
	logger := opt.Logger
	if logger == nil {
		logger = logging.Discard().Logger
	}
	keys := defaultKeyMap()
	snap := s.Snapshot()

	l := list.New(toItems(snap.Todos), itemDelegate{}, 0, 0)
	l.Title = "Todos"
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp

	ti := textinput.New()
	ti.Prompt = ui.Icon(ui.GlyphAdd, 0, nil) + " "
	ti.Placeholder = opt.Placeholder
	if opt.CharLimit > 0 {
		ti.CharLimit = opt.CharLimit
	}
	ti.SetValue(snap.Draft)
	ti.Focus()

	m := Model{
		store:  s,
		bridge: subscribe(s),
		log:    logger,
		snap:   snap,
		list:   l,
		input:  ti,
		keys:   keys,
		focus:  focusInput,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Close detaches the model from the store.
func (m Model) Close() { m.bridge.close() }

// Snapshot is the state the view currently renders.
func (m Model) Snapshot() store.Snapshot { return m.snap }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.bridge.wait())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		cmd := m.apply(msg.snap)
		return m, tea.Batch(cmd, m.bridge.wait())

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	// blink and filter results arrive whatever has focus
	var inputCmd, listCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.list, listCmd = m.list.Update(msg)
	return m, tea.Batch(inputCmd, listCmd)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		// the store owns the draft; submit whatever it holds
		if _, added := m.store.AddTodo(m.store.Snapshot().Draft); !added {
			m.log.Debug("blank draft not added")
		}
		cmd := m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.FocusList):
		m.setFocus(focusList)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.store.SetDraftText(v)
		synced := m.sync()
		return m, tea.Batch(cmd, synced)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch fs := m.list.FilterState(); {
	case fs == list.Filtering:
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	case fs == list.FilterApplied && msg.String() == "esc":
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.list.SelectedItem().(todoItem); ok {
			m.store.ToggleCompleted(it.ID)
		}
		cmd = m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.list.SelectedItem().(todoItem); ok {
			m.store.DeleteTodo(it.ID)
		}
		cmd = m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Add):
		m.setFocus(focusInput)
		return m, textinput.Blink
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// sync reads the store right after a command, so the next View shows the
// result even when the pending notification was taken by a wait command.
func (m *Model) sync() tea.Cmd {
	return m.apply(m.store.Snapshot())
}

// apply renders snap unless the view already shows that version or a newer one.
func (m *Model) apply(snap store.Snapshot) tea.Cmd {
	if snap.Version <= m.snap.Version {
		return nil
	}
	m.snap = snap

	cmd := m.list.SetItems(toItems(snap.Todos))
	if n := len(snap.Todos); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	if m.input.Value() != snap.Draft {
		m.input.SetValue(snap.Draft)
		m.input.CursorEnd()
	}
	return cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.list.SetDelegate(itemDelegate{active: f == focusList})
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	listHeight := h - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(w-4, listHeight)
	m.input.Width = w - 8
}

func (m Model) View() string {
	th := ui.Current()
	done, total := m.snap.CompletedCount(), m.snap.Len()

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(ui.Icon(ui.GlyphOK, 0, nil)), done,
		th.Pending.Render(ui.Icon(ui.GlyphPending, 0, nil)), total-done,
		th.Accent.Render("Total"), total,
	)

	body := m.list.View()
	if total == 0 {
		body = th.Muted.Render("Nothing to do yet. Type above and press enter.")
	}

	footer := ui.Footer(done, total) + "  " + ui.ProgressBar(done, total, barWidth)

	return ui.Panel([]string{
		header,
		m.input.View(),
		"",
		body,
		"",
		footer,
	})
}

// Run starts the program on s and blocks until the user quits.
func Run(s *store.Store, opt Options, progOpts ...tea.ProgramOption) error {
	m := New(s, opt)
	defer m.Close()

	if len(progOpts) == 0 {
		progOpts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
