// Package anim provides the frame loop that drives per-frame simulations.
//
// A Loop does not schedule itself. The host calls Step once per display
// refresh (a Bubble Tea tick, a time.Ticker, a test) and the loop forwards a
// Frame to its Ticker until Stop is called.
package anim

import (
	"context"
	"sync/atomic"
	"time"
)

// Frame describes one invocation of the loop.
type Frame struct {
	Seq   uint64        // 1 for the first frame after Start
	Time  time.Time     // host clock at this frame
	Delta time.Duration // time since the previous frame, 0 on the first
}

// Ticker is anything advanced once per frame.
type Ticker interface {
	Tick(Frame)
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func(Frame)

// Tick calls f(fr).
func (f TickerFunc) Tick(fr Frame) { f(fr) }

// Loop runs a Ticker between Start and Stop.
type Loop struct {
	target  Ticker
	running atomic.Bool
	seq     uint64
	last    time.Time
	onStop  []func()
}

// NewLoop creates a stopped loop for target.
func NewLoop(target Ticker) *Loop {
	return &Loop{target: target}
}

// Start arms the loop. It returns false if the loop was already running.
func (l *Loop) Start(now time.Time) bool {
	if !l.running.CompareAndSwap(false, true) {
		return false
	}
	l.seq = 0
	l.last = now
	return true
}

// Stop disarms the loop and runs the registered stop hooks once.
// Further Step calls are no-ops until the next Start.
func (l *Loop) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	hooks := l.onStop
	l.onStop = nil
	for _, fn := range hooks {
		fn()
	}
}

// OnStop registers fn to run when the loop stops, e.g. to release a surface.
func (l *Loop) OnStop(fn func()) {
	l.onStop = append(l.onStop, fn)
}

// Running reports whether the loop is armed.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Frames returns how many frames ran since the last Start.
func (l *Loop) Frames() uint64 {
	return l.seq
}

// Step runs one frame at now. It returns whether the loop is still running
// afterwards, so hosts know whether to schedule another frame.
func (l *Loop) Step(now time.Time) bool {
	if !l.running.Load() {
		return false
	}

	l.seq++
	fr := Frame{Seq: l.seq, Time: now}
	if l.seq > 1 {
		fr.Delta = now.Sub(l.last)
	}
	l.last = now

	l.target.Tick(fr)
	return l.running.Load()
}

// Run drives the loop from a time.Ticker until ctx is done or the ticker
// target stops the loop. It is meant for headless hosts; interactive hosts
// call Step from their own event loop instead.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	l.Start(time.Now())
	defer l.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !l.Step(now) {
				return nil
			}
		}
	}
}
