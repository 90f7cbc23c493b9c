package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada-live/internal/model"
	"github.com/idilsaglam/tada-live/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item.
type todoItem struct {
	model.Todo
}

func (i todoItem) FilterValue() string { return i.Text }

func toItems(todos []model.Todo) []list.Item {
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoItem{t})
	}
	return items
}

// itemDelegate renders one row per todo: checkbox, text, delete marker.
type itemDelegate struct {
	active bool // list has keyboard focus
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(it.Todo, index == m.Index(), d.active))
}

func renderRow(t model.Todo, selected, active bool) string {
	th := ui.Current()
	text := t.Text
	if t.Completed {
		text = th.Done.Render(text)
	}
	prefix := "  "
	if selected {
		prefix = th.Muted.Render("> ")
		if active {
			prefix = th.Selected.Render("> ")
		}
	}
	del := th.Muted.Render(ui.Icon(ui.GlyphDelete, 0, nil))
	return fmt.Sprintf("%s%s %s  %s", prefix, ui.Checkbox(t.Completed), text, del)
}
