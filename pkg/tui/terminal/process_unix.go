// ABOUTME: Unix input polling via poll(2) and SIGWINCH delivery for ProcessTerminal.
// ABOUTME: The signal channel is read non-blockingly by Poll; no background goroutine.

//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

// ttyID names a device independent of the descriptor it was opened through.
type ttyID struct {
	dev, ino uint64
}

// ttyKey identifies the device behind f, so that two files opened on the
// same tty share one raw-mode slot.
func ttyKey(f *os.File) any {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return f.Fd()
	}
	return ttyID{dev: uint64(st.Dev), ino: uint64(st.Ino)}
}

// readAvailable waits up to timeout for the input fd to become readable and
// feeds whatever can be read without blocking into the decoder.
func (t *ProcessTerminal) readAvailable(timeout time.Duration) error {
	fd := int(t.in.Fd())
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, pollMillis(timeout))
	if err != nil {
		// EINTR is expected when SIGWINCH arrives mid-poll.
		if errors.Is(err, unix.EINTR) {
			return nil
		}
		return fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		return nil
	}

	revents := fds[0].Revents
	if revents&unix.POLLIN == 0 {
		if revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			return fmt.Errorf("input closed (revents %#x): %w", revents, io.EOF)
		}
		return nil
	}

	read, err := unix.Read(fd, t.readBuf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return nil
		}
		return fmt.Errorf("read: %w", err)
	}
	if read == 0 {
		return fmt.Errorf("read: %w", io.EOF)
	}
	t.decoder.Feed(t.readBuf[:read])
	return nil
}

// pollMillis converts a timeout to poll(2) milliseconds: negative blocks,
// positive sub-millisecond timeouts round up so they still wait.
func pollMillis(timeout time.Duration) int {
	switch {
	case timeout < 0:
		return -1
	case timeout == 0:
		return 0
	}
	ms := int(timeout / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	return ms
}

// startResizeListener registers for SIGWINCH. Delivered signals are picked
// up by collectResize on the next Poll.
func (t *ProcessTerminal) startResizeListener() {
	if t.resizeCh != nil {
		return
	}
	t.resizeCh = make(chan os.Signal, 1)
	signal.Notify(t.resizeCh, unix.SIGWINCH)
}

func (t *ProcessTerminal) stopResizeListener() {
	if t.resizeCh == nil {
		return
	}
	signal.Stop(t.resizeCh)
	t.resizeCh = nil
}
