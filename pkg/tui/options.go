// ABOUTME: Functional options shared by NewScreen and NewApp
// ABOUTME: Poll timeout is clamped to a sane range; exit keys default to Escape

package tui

import (
	"time"

	"github.com/mauromedda/frametui/pkg/tui/key"
)

const (
	// DefaultPollTimeout is one frame at 60Hz.
	DefaultPollTimeout = 16 * time.Millisecond

	// MinPollTimeout and MaxPollTimeout bound WithPollTimeout; values
	// outside the range are clamped to the nearest end.
	MinPollTimeout = time.Millisecond
	MaxPollTimeout = time.Second
)

// Option configures a Screen or App.
type Option func(*options)

type options struct {
	pollTimeout time.Duration
	exitKeys    []key.Key
	tracer      Tracer
}

func defaultOptions() options {
	return options{
		pollTimeout: DefaultPollTimeout,
		exitKeys:    []key.Key{{Type: key.KeyEscape}},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithPollTimeout sets how long Drain waits for each input event before
// deciding the queue is empty. Values outside [MinPollTimeout,
// MaxPollTimeout] are clamped.
func WithPollTimeout(d time.Duration) Option {
	return func(o *options) {
		o.pollTimeout = clampPollTimeout(d)
	}
}

// WithExitKeys replaces the keys that end the frame loop. Calling it with
// no keys leaves the current set unchanged.
func WithExitKeys(keys ...key.Key) Option {
	return func(o *options) {
		if len(keys) == 0 {
			return
		}
		o.exitKeys = append([]key.Key(nil), keys...)
	}
}

// WithTracer installs a per-frame tracer on an App. Screens ignore it.
func WithTracer(t Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

func clampPollTimeout(d time.Duration) time.Duration {
	return min(max(d, MinPollTimeout), MaxPollTimeout)
}
