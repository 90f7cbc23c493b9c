package cli

import (
	"fmt"

	"github.com/idilsaglam/tada-live/internal/model"
	"github.com/idilsaglam/tada-live/internal/store"
	"github.com/idilsaglam/tada-live/internal/ui"
)

// renderList frames the snapshot in a panel. Indexes are 1-based and
// always refer to store order, even when grouped.
func renderList(snap store.Snapshot, group bool) string {
	th := ui.Current()
	done, total := snap.CompletedCount(), snap.Len()

	lines := []string{th.Title.Render("Todos")}
	if total == 0 {
		lines = append(lines, th.Muted.Render("(empty)"))
	} else if group {
		lines = append(lines, th.Pending.Render("Pending"))
		lines = append(lines, rows(snap.Todos, func(t model.Todo) bool { return !t.Completed })...)
		lines = append(lines, th.Success.Render("Done"))
		lines = append(lines, rows(snap.Todos, func(t model.Todo) bool { return t.Completed })...)
	} else {
		lines = append(lines, rows(snap.Todos, func(model.Todo) bool { return true })...)
	}
	lines = append(lines, "", ui.Footer(done, total), ui.ProgressBar(done, total, 20))
	return ui.Panel(lines)
}

func rows(todos []model.Todo, keep func(model.Todo) bool) []string {
	var out []string
	for i, t := range todos {
		if !keep(t) {
			continue
		}
		text := t.Text
		if t.Completed {
			text = ui.Current().Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%2d. %s %s", i+1, ui.Checkbox(t.Completed), text))
	}
	return out
}
