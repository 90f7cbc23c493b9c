package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada-live/internal/config"
	"github.com/idilsaglam/tada-live/internal/logging"
	"github.com/idilsaglam/tada-live/internal/store"
	"github.com/idilsaglam/tada-live/internal/tui"
	"github.com/idilsaglam/tada-live/internal/ui"
)

// Options tune output behavior from root flags and config.
type Options struct {
	Group       bool // list grouped by pending/done
	Placeholder string
	CharLimit   int
	Logger      *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// runUI replaces the full-screen program in tests.
	runUI func(*store.Store, tui.Options) error
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard().Logger
	}
	if o.runUI == nil {
		o.runUI = func(s *store.Store, opt tui.Options) error { return tui.Run(s, opt) }
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// No arguments opens the full-screen list.
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		return doUI(nil, opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ui":
		return doUI(a, opt)

	case "batch":
		if len(a) > 1 {
			ui.Fail(opt.Stderr, "usage: todo batch [file]")
			return 2
		}
		path := ""
		if len(a) == 1 {
			path = a[0]
		}
		return doBatch(path, opt)

	case "config":
		fmt.Fprint(opt.Stdout, config.Example)
		return 0
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny in-memory todo list

Usage:
  todo [flags] [subcommand] [args]

Subcommands:
  ui [title...]      Open the full-screen list (default); titles are added first
  batch [file]       Run commands from file (or stdin) without a screen
  config             Print an example config file
  help               Show this help

Batch commands (one per line, # starts a comment):
  add <text>         Add a todo
  draft <text>       Replace the draft text
  submit             Add the draft as a todo
  toggle <index>     Toggle done for the item at 1-based index
  rm <index>         Remove the item at 1-based index
  ls                 Print the list
  count              Print "Completed: n / total"

Flags:
  --config <path>  --theme classic|neon|mono  --group
  --log-file <path>  --log-level <level>  --log-format text|json|logfmt

Nothing is saved: the list lives only as long as the process.

Examples:
  todo
  todo ui "Wash car" "Read book"
  printf 'add Wash car\nadd Read book\ntoggle 1\nls\n' | todo batch
`)
}

func newStore(opt Options) *store.Store {
	return store.New(store.WithLogger(opt.Logger))
}

func doUI(titles []string, opt Options) int {
	s := newStore(opt)
	for _, t := range titles {
		if _, ok := s.AddTodo(t); !ok {
			ui.Fail(opt.Stderr, fmt.Sprintf("skipping blank title %q", t))
		}
	}
	opt.Logger.Info("starting ui", "seeded", s.Len())
	err := opt.runUI(s, tui.Options{
		Placeholder: opt.Placeholder,
		CharLimit:   opt.CharLimit,
		Logger:      opt.Logger,
	})
	if err != nil {
		opt.Logger.Error("ui failed", "err", err)
		ui.Fail(opt.Stderr, "tui: "+err.Error())
		return 1
	}
	snap := s.Snapshot()
	opt.Logger.Info("ui closed", "completed", snap.CompletedCount(), "total", snap.Len())
	fmt.Fprintln(opt.Stdout, ui.Current().Muted.Render(ui.Footer(snap.CompletedCount(), snap.Len())))
	return 0
}
