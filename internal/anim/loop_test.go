package anim

import (
	"context"
	"testing"
	"time"
)

func TestLoop_StepBeforeStart(t *testing.T) {
	calls := 0
	l := NewLoop(TickerFunc(func(Frame) { calls++ }))

	if l.Step(time.Now()) {
		t.Error("Step on a stopped loop should report not running")
	}
	if calls != 0 {
		t.Errorf("ticker called %d times before Start, want 0", calls)
	}
}

func TestLoop_FrameSequence(t *testing.T) {
	var frames []Frame
	l := NewLoop(TickerFunc(func(fr Frame) { frames = append(frames, fr) }))

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !l.Start(t0) {
		t.Fatal("Start returned false on a fresh loop")
	}
	if l.Start(t0) {
		t.Error("second Start should return false")
	}

	for i := 1; i <= 3; i++ {
		if !l.Step(t0.Add(time.Duration(i) * 16 * time.Millisecond)) {
			t.Fatalf("Step %d reported stopped", i)
		}
	}

	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0].Seq != 1 || frames[2].Seq != 3 {
		t.Errorf("Seq = %d..%d, want 1..3", frames[0].Seq, frames[2].Seq)
	}
	if frames[0].Delta != 0 {
		t.Errorf("first frame Delta = %v, want 0", frames[0].Delta)
	}
	if frames[1].Delta != 16*time.Millisecond {
		t.Errorf("second frame Delta = %v, want 16ms", frames[1].Delta)
	}
	if l.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", l.Frames())
	}
}

func TestLoop_StopRunsHooksOnce(t *testing.T) {
	calls, hooks := 0, 0
	l := NewLoop(TickerFunc(func(Frame) { calls++ }))
	l.OnStop(func() { hooks++ })

	l.Start(time.Now())
	l.Step(time.Now())
	l.Stop()
	l.Stop()

	if hooks != 1 {
		t.Errorf("stop hook ran %d times, want 1", hooks)
	}
	if l.Running() {
		t.Error("Running() = true after Stop")
	}
	if l.Step(time.Now()) {
		t.Error("Step after Stop should report not running")
	}
	if calls != 1 {
		t.Errorf("ticker called %d times, want 1", calls)
	}
}

func TestLoop_StopFromTick(t *testing.T) {
	var l *Loop
	l = NewLoop(TickerFunc(func(fr Frame) {
		if fr.Seq == 2 {
			l.Stop()
		}
	}))

	l.Start(time.Now())
	if !l.Step(time.Now()) {
		t.Fatal("first Step should keep running")
	}
	if l.Step(time.Now()) {
		t.Error("Step that stopped the loop should report not running")
	}
}

func TestLoop_RunUntilTargetStops(t *testing.T) {
	var l *Loop
	l = NewLoop(TickerFunc(func(fr Frame) {
		if fr.Seq == 5 {
			l.Stop()
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.Run(ctx, time.Millisecond); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", l.Frames())
	}
}

func TestLoop_RunCancelled(t *testing.T) {
	l := NewLoop(TickerFunc(func(Frame) {}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx, time.Hour); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if l.Running() {
		t.Error("loop still running after Run returned")
	}
}
