// ABOUTME: CLI entry point for frametui-demo with terminal crash recovery
// ABOUTME: Parses flags, loads config, wires logging and tracing, runs the frame loop

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mauromedda/frametui/internal/config"
	"github.com/mauromedda/frametui/internal/log"
	"github.com/mauromedda/frametui/pkg/tui"
	"github.com/mauromedda/frametui/pkg/tui/terminal"
	"github.com/mauromedda/frametui/pkg/tui/trace"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("frametui-demo %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	settings, err := loadSettings(args)
	if err != nil {
		return err
	}

	term := terminal.Stdio()
	defer terminal.RestoreOnPanic(term)

	return runApp(term, settings)
}

func loadSettings(args cliArgs) (*config.Settings, error) {
	root := args.root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		root = cwd
	}

	settings, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	args.apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// runApp owns t for the duration of the frame loop. Diagnostics go to the
// configured log file or nowhere, never onto the screen being drawn.
func runApp(t terminal.Terminal, settings *config.Settings) (err error) {
	level, err := settings.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)

	logOut, closeLog, err := openLog(settings.LogFile)
	if err != nil {
		return err
	}
	prevOut := log.SetOutput(logOut)
	defer func() {
		log.SetOutput(prevOut)
		err = errors.Join(err, closeLog())
	}()

	opts, err := settings.ScreenOptions()
	if err != nil {
		return err
	}

	if settings.TraceFile != "" {
		tracer, closeTrace, terr := openTrace(settings.TraceFile)
		if terr != nil {
			return terr
		}
		defer func() { err = errors.Join(err, closeTrace()) }()
		opts = append(opts, tui.WithTracer(tracer))
	}

	app, err := tui.NewApp(t, counter{limit: settings.Frames}, opts...)
	if err != nil {
		return err
	}
	if err := app.Run(update); err != nil {
		return err
	}
	log.Info("demo: finished after %d frames", app.State().ticks)
	return nil
}

func openLog(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	if err := config.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, f.Close, nil
}

func openTrace(path string) (*trace.Writer, func() error, error) {
	if err := config.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating trace file: %w", err)
	}
	tw := trace.NewWriter(f)
	closeTrace := func() error {
		return errors.Join(tw.Flush(), f.Close())
	}
	return tw, closeTrace, nil
}
