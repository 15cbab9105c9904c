package img2pdf

import "sync/atomic"

// progressSteps is the approximate number of progress notifications per
// batch; large batches report every total/progressSteps completions.
const progressSteps = 20

// progressTracker counts completed tasks and forwards throttled snapshots
// to a ProgressFunc through a buffered channel drained by one goroutine.
// Workers never wait on the callback.
type progressTracker struct {
	total     int
	step      int
	completed atomic.Int64
	ch        chan Progress
	done      chan struct{}
}

// newProgressTracker creates a tracker for total tasks. With a nil fn the
// tracker only counts.
func newProgressTracker(total int, fn ProgressFunc) *progressTracker {
	p := &progressTracker{
		total: total,
		step:  max(1, total/progressSteps),
	}
	if fn == nil {
		return p
	}

	// Room for every snapshot complete can emit, so sends never block.
	p.ch = make(chan Progress, total/p.step+1)
	p.done = make(chan struct{})
	go p.drain(fn)
	return p
}

// drain delivers snapshots in increasing Completed order, dropping any that
// arrive after a newer one.
func (p *progressTracker) drain(fn ProgressFunc) {
	defer close(p.done)

	last := 0
	for snap := range p.ch {
		if snap.Completed <= last {
			continue
		}
		last = snap.Completed
		fn(snap)
	}
}

// complete records one finished task and returns the new count.
func (p *progressTracker) complete(label string) int {
	n := int(p.completed.Add(1))
	if p.ch == nil {
		return n
	}
	if n%p.step != 0 && n != p.total {
		return n
	}

	select {
	case p.ch <- Progress{Completed: n, Total: p.total, Label: label}:
	default:
	}
	return n
}

// count returns the number of completed tasks.
func (p *progressTracker) count() int {
	return int(p.completed.Load())
}

// close stops the drain goroutine once pending snapshots are delivered.
// complete must not be called afterwards.
func (p *progressTracker) close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	<-p.done
}
