// ABOUTME: Sentinel errors for the frame loop
// ABOUTME: Wrapped with context by Screen and App; test with errors.Is

package tui

import "errors"

var (
	// ErrInput wraps failures reading or polling terminal input.
	ErrInput = errors.New("terminal input failed")

	// ErrOutput wraps failures writing or flushing a frame.
	ErrOutput = errors.New("terminal output failed")

	// ErrClosed is returned by Screen methods after Close.
	ErrClosed = errors.New("screen closed")

	// ErrStopped is returned by Run on an App whose loop already ended.
	ErrStopped = errors.New("app already stopped")
)
