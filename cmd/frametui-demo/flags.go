// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --root, --frames, --poll-timeout, --exit-keys, --log-level, --log-file, --trace, --version

package main

import (
	"flag"
	"strings"
	"time"

	"github.com/mauromedda/frametui/internal/config"
)

type cliArgs struct {
	root        string
	frames      int
	pollTimeout time.Duration
	exitKeys    string
	logLevel    string
	logFile     string
	trace       string
	version     bool
}

func parseFlags(fs *flag.FlagSet, argv []string) (cliArgs, error) {
	var args cliArgs

	fs.StringVar(&args.root, "root", "", "Project root holding .frametui/config.yaml and .env (default: cwd)")
	fs.IntVar(&args.frames, "frames", 0, "Exit after this many frames (0 = run until Esc)")
	fs.DurationVar(&args.pollTimeout, "poll-timeout", 0, "Input poll timeout per event (e.g. 16ms)")
	fs.StringVar(&args.exitKeys, "exit-keys", "", "Comma-separated keys that quit (e.g. escape,ctrl+c)")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&args.logFile, "log-file", "", "Write diagnostics to this file while the screen is active")
	fs.StringVar(&args.trace, "trace", "", "Write a JSON-lines frame trace to this file")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	err := fs.Parse(argv)
	return args, err
}

// apply overrides settings with every flag that was set.
func (a cliArgs) apply(s *config.Settings) {
	if a.frames != 0 {
		s.Frames = a.frames
	}
	if a.pollTimeout != 0 {
		s.PollTimeout = config.Duration(a.pollTimeout)
	}
	if a.exitKeys != "" {
		s.ExitKeys = splitList(a.exitKeys)
	}
	if a.logLevel != "" {
		s.LogLevel = a.logLevel
	}
	if a.logFile != "" {
		s.LogFile = a.logFile
	}
	if a.trace != "" {
		s.TraceFile = a.trace
	}
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
