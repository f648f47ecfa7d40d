// ABOUTME: The demo application: a frame counter that quits on Esc or after a frame budget
// ABOUTME: Kept apart from main so it can be driven by a VirtualTerminal in tests

package main

import (
	"fmt"

	"github.com/mauromedda/frametui/pkg/tui"
)

type counter struct {
	limit int
	ticks int
}

func update(ctx *tui.Context[counter]) tui.UpdateResult {
	c := ctx.State()
	c.ticks++

	ctx.Label(fmt.Sprintf("frame %d", ctx.Frame()))
	if c.limit > 0 {
		ctx.LabelAt(0, 1, fmt.Sprintf("%d of %d, Esc quits early", c.ticks, c.limit))
	} else {
		ctx.LabelAt(0, 1, "press Esc to quit")
	}

	if c.limit > 0 && c.ticks >= c.limit {
		return tui.Exit
	}
	return tui.Continue
}
