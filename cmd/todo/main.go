package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tada-live/internal/cli"
	"github.com/idilsaglam/tada-live/internal/config"
	"github.com/idilsaglam/tada-live/internal/logging"
	"github.com/idilsaglam/tada-live/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, args, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)

	logger, err := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		File:      cfg.LogFile,
		Prefix:    "todo",
		Timestamp: true,
	})
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}

	// Hand the remaining args to the CLI runner.
	code := cli.Run(args, cli.Options{
		Group:       cfg.Group,
		Placeholder: cfg.Placeholder,
		CharLimit:   cfg.CharLimit,
		Logger:      logger.Logger,
	})
	logger.Close()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
