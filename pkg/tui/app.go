// ABOUTME: App drives the frame loop over caller-owned state until Esc or the callback exits
// ABOUTME: Each tick drains input, runs the update callback, then renders its labels

package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/mauromedda/frametui/internal/log"
	"github.com/mauromedda/frametui/pkg/tui/terminal"
)

// App couples application state of type S with a Screen.
type App[S any] struct {
	state   S
	screen  *Screen
	tracer  Tracer
	frames  uint64
	stopped bool
}

// NewApp takes ownership of t through a new Screen. The App's state starts
// as state.
func NewApp[S any](t terminal.Terminal, state S, opts ...Option) (*App[S], error) {
	screen, err := NewScreen(t, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	return &App[S]{
		state:  state,
		screen: screen,
		tracer: buildOptions(opts).tracer,
	}, nil
}

// State returns the application state.
func (a *App[S]) State() *S {
	return &a.state
}

// Frames returns how many ticks Run has started.
func (a *App[S]) Frames() uint64 {
	return a.frames
}

// Run loops until an exit key is pressed, update returns Exit, or input or
// output fails. Every tick drains input first; an exit key ends the loop
// without calling update. Otherwise update builds the frame through its
// Context and the frame is rendered, even when update returned Exit.
//
// The Screen is closed before Run returns, including when update panics;
// the panic is re-raised once the terminal is restored. An App runs once:
// later calls return ErrStopped.
func (a *App[S]) Run(update func(*Context[S]) UpdateResult) (err error) {
	if a.stopped {
		return ErrStopped
	}
	a.stopped = true

	defer func() {
		if r := recover(); r != nil {
			_ = a.screen.Close()
			panic(r)
		}
		if cerr := a.screen.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing screen: %w", cerr))
		}
	}()

	for {
		done, tickErr := a.tick(update)
		if tickErr != nil {
			return tickErr
		}
		if done {
			log.Debug("app: stopped after %d frames", a.frames)
			return nil
		}
	}
}

// tick runs one frame and reports whether the loop should stop.
func (a *App[S]) tick(update func(*Context[S]) UpdateResult) (bool, error) {
	start := time.Now()
	rec := FrameRecord{Frame: a.frames}
	a.frames++

	res, err := a.screen.Drain()
	if err != nil {
		a.trace(rec, start, StopError, err)
		return true, fmt.Errorf("frame %d: %w", rec.Frame, err)
	}
	if res == Exit {
		a.trace(rec, start, StopInput, nil)
		return true, nil
	}

	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)

	ctx := &Context[S]{state: &a.state, buf: buf, frame: rec.Frame}
	res = update(ctx)
	ctx.done = true

	if a.tracer != nil {
		rec.Labels = buf.Labels()
	}
	if err := a.screen.Render(buf.Elements); err != nil {
		a.trace(rec, start, StopError, err)
		return true, fmt.Errorf("frame %d: %w", rec.Frame, err)
	}

	if res == Exit {
		a.trace(rec, start, StopCallback, nil)
		return true, nil
	}
	a.trace(rec, start, StopNone, nil)
	return false, nil
}

func (a *App[S]) trace(rec FrameRecord, start time.Time, stop StopReason, err error) {
	if a.tracer == nil {
		return
	}
	rec.Stop = stop
	rec.Duration = time.Since(start)
	if err != nil {
		rec.Err = err.Error()
	}
	a.tracer.TraceFrame(rec)
}
