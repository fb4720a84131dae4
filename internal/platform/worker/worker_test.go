package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoopRunsTaskOnInterval(t *testing.T) {
	logger := zerolog.Nop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int64

	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = Loop(ctx, &logger, Task{
			Name:     "counter",
			Interval: 5 * time.Millisecond,
			Run: func(context.Context) {
				runs.Add(1)
			},
		})
	}()

	deadline := time.After(2 * time.Second)
	for runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("task ran %d times, want at least 3", runs.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not return after cancellation")
	}
}

func TestLoopSkipsDisabledTasks(t *testing.T) {
	logger := zerolog.Nop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Loop(ctx, &logger, Task{Name: "disabled", Interval: 0, Run: func(context.Context) {}})
	if err == nil {
		t.Fatal("Loop should return the context error")
	}
}
