package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/tada-live/internal/model"
	"github.com/idilsaglam/tada-live/internal/store"
	"github.com/idilsaglam/tada-live/internal/ui"
)

// batch drives a store from line commands, the way the screen drives it
// from key presses.
type batch struct {
	store *store.Store
	opt   Options
	fails int
}

func doBatch(path string, opt Options) int {
	in := opt.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			ui.Fail(opt.Stderr, "open: "+err.Error())
			return 1
		}
		defer f.Close()
		in = f
	}

	b := &batch{store: newStore(opt), opt: opt}
	if err := b.run(in); err != nil {
		ui.Fail(opt.Stderr, "read: "+err.Error())
		return 1
	}
	fmt.Fprintln(opt.Stdout, renderList(b.store.Snapshot(), opt.Group))
	if b.fails > 0 {
		return 1
	}
	return 0
}

func (b *batch) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, arg, _ := strings.Cut(text, " ")
		if err := b.exec(cmd, arg); err != nil {
			b.fails++
			b.opt.Logger.Warn("batch command failed", "line", line, "cmd", cmd, "err", err)
			ui.Fail(b.opt.Stderr, fmt.Sprintf("line %d: %v", line, err))
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

func (b *batch) exec(cmd, arg string) error {
	switch cmd {
	case "add":
		return b.add(arg)

	case "draft":
		b.store.SetDraftText(arg)
		return nil

	case "submit":
		return b.add(b.store.Snapshot().Draft)

	case "toggle", "done":
		t, err := b.pick(cmd, arg)
		if err != nil {
			return err
		}
		b.store.ToggleCompleted(t.ID)
		state := "pending"
		if !t.Completed {
			state = "done"
		}
		ui.OK(b.opt.Stdout, fmt.Sprintf("%s: %s", state, t.Text))
		return nil

	case "rm", "delete":
		t, err := b.pick(cmd, arg)
		if err != nil {
			return err
		}
		b.store.DeleteTodo(t.ID)
		ui.OK(b.opt.Stdout, "removed: "+t.Text)
		return nil

	case "ls":
		fmt.Fprintln(b.opt.Stdout, renderList(b.store.Snapshot(), b.opt.Group))
		return nil

	case "count":
		snap := b.store.Snapshot()
		fmt.Fprintln(b.opt.Stdout, ui.Footer(snap.CompletedCount(), snap.Len()))
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// add reports blank text but does not count it as a failure: the store
// simply ignores it.
func (b *batch) add(text string) error {
	t, ok := b.store.AddTodo(text)
	if !ok {
		fmt.Fprintln(b.opt.Stdout, ui.Current().Muted.Render("ignored blank todo"))
		return nil
	}
	ui.OK(b.opt.Stdout, "added: "+t.Text)
	return nil
}

// pick resolves a 1-based index against the current snapshot.
func (b *batch) pick(cmd, arg string) (model.Todo, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return model.Todo{}, fmt.Errorf("usage: %s <index>", cmd)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Todo{}, fmt.Errorf("%s: not a number: %s", cmd, arg)
	}
	todos := b.store.Snapshot().Todos
	if n < 1 || n > len(todos) {
		return model.Todo{}, fmt.Errorf("index out of range: have %d, got %d", len(todos), n)
	}
	return todos[n-1], nil
}
