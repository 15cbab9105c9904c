package img2pdf

import (
	"bytes"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// DefaultMaxWorkers caps the automatic pool size: each in-flight image
	// holds a full RGBA raster.
	DefaultMaxWorkers = 4
)

// ResolveWorkers determines the worker pool size.
// Priority: explicit workers > min(DefaultMaxWorkers, GOMAXPROCS).
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := min(DefaultMaxWorkers, runtime.GOMAXPROCS(0))
	if n < MinWorkers {
		return MinWorkers
	}
	return n
}

// maxPooledBuffer keeps oversized scratch buffers from pinning memory.
const maxPooledBuffer = 16 << 20

// bufferPool recycles the scratch buffers used to encode page images.
var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// getBuffer returns an empty scratch buffer.
func getBuffer() *bytes.Buffer {
	buf, _ := bufferPool.Get().(*bytes.Buffer)
	if buf == nil {
		return new(bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// putBuffer returns buf to the pool. Large buffers are dropped.
func putBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
