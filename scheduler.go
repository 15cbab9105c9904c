package img2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TaskFunc produces the page fragment for one source.
type TaskFunc func(ctx context.Context, src Source) ([]byte, error)

// Scheduler runs one task per source on a bounded worker pool and returns
// the fragments in source order, whatever order the tasks finish in.
type Scheduler struct {
	workers  int
	progress ProgressFunc
	logger   zerolog.Logger
}

// NewScheduler creates a Scheduler. workers <= 0 selects the automatic pool
// size (see ResolveWorkers). progress may be nil.
func NewScheduler(workers int, progress ProgressFunc, logger zerolog.Logger) *Scheduler {
	return &Scheduler{workers: workers, progress: progress, logger: logger}
}

// Run executes task for every source with at most the configured number of
// tasks in flight. Submission blocks while the pool is saturated.
//
// The batch is fail-fast: the first failing task cancels the context passed
// to the others, stops submission, and Run returns a *BatchError naming that
// source once in-flight tasks have returned. Results of the other tasks are
// discarded. When ctx is canceled, no new task starts and Run returns
// ctx.Err().
func (s *Scheduler) Run(ctx context.Context, sources []Source, task TaskFunc) ([]Fragment, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if err := validateIndexes(sources); err != nil {
		return nil, err
	}

	workers := min(ResolveWorkers(s.workers), len(sources))
	s.logger.Debug().Int("sources", len(sources)).Int("workers", workers).Msg("batch started")
	start := time.Now()

	// Each task owns arena[src.Index]; no other state is shared.
	arena := make([]Fragment, len(sources))
	tracker := newProgressTracker(len(sources), s.progress)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, src := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			data, err := runTask(gctx, task, src)
			if err != nil {
				return &BatchError{Path: src.String(), Index: src.Index, Cause: err}
			}
			arena[src.Index] = Fragment{Index: src.Index, Source: src.String(), Data: data}
			n := tracker.complete(src.Name())
			s.logger.Debug().Int("index", src.Index).Str("source", src.String()).Int("completed", n).Msg("page ready")
			return nil
		})
	}

	err := g.Wait()
	tracker.close()

	if tracker.count() != len(sources) && ctx.Err() != nil {
		s.logger.Warn().Err(ctx.Err()).Int("completed", tracker.count()).Msg("batch canceled")
		return nil, ctx.Err()
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("batch aborted")
		return nil, err
	}
	if tracker.count() != len(sources) {
		return nil, fmt.Errorf("%w: %d of %d pages produced", ErrBatch, tracker.count(), len(sources))
	}

	s.logger.Debug().Int("pages", len(arena)).Dur("elapsed", time.Since(start)).Msg("batch finished")
	return arena, nil
}

// runTask calls task and converts a panic into an error.
func runTask(ctx context.Context, task TaskFunc, src Source) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return task(ctx, src)
}

// validateIndexes checks that source indexes are exactly 0..len-1.
func validateIndexes(sources []Source) error {
	seen := make([]bool, len(sources))
	for _, src := range sources {
		if src.Index < 0 || src.Index >= len(sources) {
			return fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidSource, src.Index, len(sources))
		}
		if seen[src.Index] {
			return fmt.Errorf("%w: duplicate index %d", ErrInvalidSource, src.Index)
		}
		seen[src.Index] = true
	}
	return nil
}
