package service

import (
	"fmt"
	"io"
	"sync"

	"imagetiler/internal/core/domain"
	"imagetiler/internal/core/ports"
)

// Reporter owns the shared console streams and the completed-job counter.
// Every write and every counter update happens under one mutex so progress
// lines never interleave and increments are never lost.
type Reporter struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	completed int
}

// NewReporter creates a new Reporter writing progress to out and failures
// to errOut.
func NewReporter(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut}
}

// Printf writes one formatted line-group to the progress stream.
func (r *Reporter) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// JobStarted announces a job with its original and target dimensions.
func (r *Reporter) JobStarted(job domain.Job, dims *ports.TileOutput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "[%d] %s: %dx%d -> %dx%d\n",
		job.Index+1, job.InputPath,
		dims.OriginalWidth, dims.OriginalHeight, dims.Width, dims.Height)
	fmt.Fprintln(r.out, "  Merging tiles to binary...")
}

// JobDone records one successful completion and prints the progress line.
// It returns the new completed count.
func (r *Reporter) JobDone(job domain.Job, tileCount, total int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
	fmt.Fprintf(r.out, "[%d/%d] ✓ %s -> %s (%d tiles)\n",
		r.completed, total, job.InputPath, job.OutputPath, tileCount)
	return r.completed
}

// JobFailed prints a failure line, prefixed distinctly from progress lines.
func (r *Reporter) JobFailed(job domain.Job, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.errOut, "[ERROR] %s: %v\n", job.InputPath, err)
}

// Completed returns the number of successfully completed jobs so far.
func (r *Reporter) Completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}
