package img2pdf

// Notes:
// - Tasks here are synthetic: they return the source index as bytes so that
//   ordering can be checked without rendering anything.
// - Random delays shuffle completion order; the assertions hold for any
//   interleaving.

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// indexSources returns n in-memory sources indexed 0..n-1.
func indexSources(n int) []Source {
	sources := make([]Source, n)
	for i := range sources {
		sources[i] = Source{Path: fmt.Sprintf("img-%02d.png", i), Index: i}
	}
	return sources
}

// echoTask returns the source index after a short random delay.
func echoTask(ctx context.Context, src Source) ([]byte, error) {
	select {
	case <-time.After(time.Duration(rand.IntN(3)) * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []byte{byte(src.Index)}, nil
}

// ---------------------------------------------------------------------------
// TestScheduler_Run - Ordering
// ---------------------------------------------------------------------------

func TestScheduler_PreservesOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		workers int
	}{
		{"single source", 1, 4},
		{"sequential", 10, 1},
		{"more sources than workers", 50, 4},
		{"more workers than sources", 3, 16},
		{"automatic pool size", 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fragments, err := NewScheduler(tt.workers, nil, zerolog.Nop()).Run(context.Background(), indexSources(tt.n), echoTask)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(fragments) != tt.n {
				t.Fatalf("len(fragments) = %d, want %d", len(fragments), tt.n)
			}
			for i, f := range fragments {
				if f.Index != i || int(f.Data[0]) != i {
					t.Errorf("fragments[%d] = {Index: %d, Data: %v}, want index %d", i, f.Index, f.Data, i)
				}
				if want := fmt.Sprintf("img-%02d.png", i); f.Source != want {
					t.Errorf("fragments[%d].Source = %q, want %q", i, f.Source, want)
				}
			}
		})
	}
}

func TestScheduler_ShuffledInputOrder(t *testing.T) {
	t.Parallel()

	sources := indexSources(12)
	rand.Shuffle(len(sources), func(i, j int) { sources[i], sources[j] = sources[j], sources[i] })

	fragments, err := NewScheduler(3, nil, zerolog.Nop()).Run(context.Background(), sources, echoTask)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, f := range fragments {
		if f.Index != i {
			t.Errorf("fragments[%d].Index = %d", i, f.Index)
		}
	}
}

// ---------------------------------------------------------------------------
// TestScheduler_Run - Concurrency bound
// ---------------------------------------------------------------------------

func TestScheduler_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const workers = 3
	var inFlight, peak atomic.Int32

	task := func(ctx context.Context, src Source) ([]byte, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		return []byte{1}, nil
	}

	if _, err := NewScheduler(workers, nil, zerolog.Nop()).Run(context.Background(), indexSources(30), task); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency = %d, want <= %d", got, workers)
	}
}

// ---------------------------------------------------------------------------
// TestScheduler_Run - Failure handling
// ---------------------------------------------------------------------------

func TestScheduler_FailFast(t *testing.T) {
	t.Parallel()

	cause := errors.New("corrupt")
	var started atomic.Int32

	task := func(ctx context.Context, src Source) ([]byte, error) {
		started.Add(1)
		if src.Index == 2 {
			return nil, &DecodeError{Path: src.String(), Cause: cause}
		}
		return echoTask(ctx, src)
	}

	const n = 200
	fragments, err := NewScheduler(2, nil, zerolog.Nop()).Run(context.Background(), indexSources(n), task)
	if fragments != nil {
		t.Errorf("fragments = %v, want nil", fragments)
	}

	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("error = %v, want *BatchError", err)
	}
	if batchErr.Index != 2 || batchErr.Path != "img-02.png" {
		t.Errorf("BatchError = {Index: %d, Path: %q}, want index 2 img-02.png", batchErr.Index, batchErr.Path)
	}
	for _, target := range []error{ErrBatch, ErrDecode, cause} {
		if !errors.Is(err, target) {
			t.Errorf("error should match %v", target)
		}
	}
	if got := started.Load(); got == n {
		t.Errorf("all %d tasks started; submission should stop after a failure", n)
	}
}

func TestScheduler_RecoversPanic(t *testing.T) {
	t.Parallel()

	task := func(ctx context.Context, src Source) ([]byte, error) {
		if src.Index == 1 {
			panic("boom")
		}
		return []byte{1}, nil
	}

	_, err := NewScheduler(2, nil, zerolog.Nop()).Run(context.Background(), indexSources(4), task)
	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("error = %v, want *BatchError", err)
	}
	if batchErr.Index != 1 {
		t.Errorf("BatchError.Index = %d, want 1", batchErr.Index)
	}
}

func TestScheduler_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once

	task := func(tctx context.Context, src Source) ([]byte, error) {
		once.Do(cancel)
		<-tctx.Done()
		return nil, tctx.Err()
	}

	_, err := NewScheduler(2, nil, zerolog.Nop()).Run(ctx, indexSources(10), task)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		t.Errorf("cancellation should not be reported as %T", err)
	}
}

func TestScheduler_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sources []Source
		wantErr error
	}{
		{"no sources", nil, ErrNoSources},
		{"empty sources", []Source{}, ErrNoSources},
		{"duplicate index", []Source{{Path: "a", Index: 0}, {Path: "b", Index: 0}}, ErrInvalidSource},
		{"index out of range", []Source{{Path: "a", Index: 0}, {Path: "b", Index: 2}}, ErrInvalidSource},
		{"negative index", []Source{{Path: "a", Index: -1}}, ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewScheduler(1, nil, zerolog.Nop()).Run(context.Background(), tt.sources, echoTask)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestScheduler_Run - Progress
// ---------------------------------------------------------------------------

func TestScheduler_Progress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
	}{
		{"small batch reports every completion", 5},
		{"large batch is throttled", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var mu sync.Mutex
			var seen []Progress
			progress := func(p Progress) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, p)
			}

			if _, err := NewScheduler(4, progress, zerolog.Nop()).Run(context.Background(), indexSources(tt.n), echoTask); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			mu.Lock()
			defer mu.Unlock()
			if len(seen) == 0 {
				t.Fatal("no progress reported")
			}
			completed := make([]int, len(seen))
			for i, p := range seen {
				if p.Total != tt.n {
					t.Errorf("Total = %d, want %d", p.Total, tt.n)
				}
				completed[i] = p.Completed
			}
			if !slices.IsSorted(completed) || len(slices.Compact(slices.Clone(completed))) != len(completed) {
				t.Errorf("Completed values not strictly increasing: %v", completed)
			}
			if last := seen[len(seen)-1]; last.Completed != tt.n {
				t.Errorf("last Completed = %d, want %d", last.Completed, tt.n)
			}
			if len(seen) > progressSteps+1 {
				t.Errorf("%d notifications, want at most %d", len(seen), progressSteps+1)
			}
		})
	}
}

func TestProgressTracker_DropsStaleSnapshots(t *testing.T) {
	t.Parallel()

	var got []int
	p := newProgressTracker(3, func(pr Progress) { got = append(got, pr.Completed) })
	p.ch <- Progress{Completed: 2, Total: 3}
	p.ch <- Progress{Completed: 1, Total: 3}
	p.ch <- Progress{Completed: 3, Total: 3}
	p.close()

	if !slices.Equal(got, []int{2, 3}) {
		t.Errorf("delivered %v, want [2 3]", got)
	}
}

func TestProgressTracker_NilCallbackCounts(t *testing.T) {
	t.Parallel()

	p := newProgressTracker(2, nil)
	p.complete("a")
	p.complete("b")
	p.close()

	if p.count() != 2 {
		t.Errorf("count() = %d, want 2", p.count())
	}
}
