// Package worker runs periodic background tasks for the long-running serve
// mode.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is one periodic job. Run is invoked once at startup and then on every
// interval tick until the context is canceled.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Loop runs all tasks on their own tickers and blocks until the context is
// canceled. Tasks with a non-positive interval are skipped.
func Loop(ctx context.Context, logger *zerolog.Logger, tasks ...Task) error {
	var (
		wg      sync.WaitGroup
		started int
	)

	for _, task := range tasks {
		if task.Run == nil || task.Interval <= 0 {
			continue
		}

		started++

		wg.Add(1)

		go func(task Task) {
			defer wg.Done()

			runTask(ctx, logger, task)
		}(task)
	}

	if started == 0 {
		<-ctx.Done()
	}

	wg.Wait()

	return fmt.Errorf("worker loop: %w", ctx.Err())
}

func runTask(ctx context.Context, logger *zerolog.Logger, task Task) {
	logger.Info().Str("task", task.Name).Dur("interval", task.Interval).Msg("periodic task started")

	task.Run(ctx)

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("task", task.Name).Msg("periodic task stopped")

			return
		case <-ticker.C:
			task.Run(ctx)
		}
	}
}
