package service

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"imagetiler/internal/core/domain"
)

// Fallback worker count when host parallelism cannot be determined.
const minWorkers = 4

// JobRunner executes a single job. Implementations must capture all
// failures into the returned result.
type JobRunner interface {
	Execute(ctx context.Context, job domain.Job, total int) domain.JobResult
}

// Summary aggregates the outcome of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []domain.JobResult
}

// Scheduler fans jobs across a bounded pool of workers.
type Scheduler struct {
	runner JobRunner
}

// NewScheduler creates a new Scheduler.
func NewScheduler(runner JobRunner) *Scheduler {
	return &Scheduler{runner: runner}
}

// Run executes jobs with at most maxConcurrency in flight. Admission
// blocks once the limit is reached and unblocks as soon as any in-flight
// job finishes. Jobs are independent: a failure degrades only its own
// result, never cancels siblings.
//
// The returned error aggregates the failed jobs and is nil when every job
// succeeded.
func (s *Scheduler) Run(ctx context.Context, jobs []domain.Job, maxConcurrency int) (Summary, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.NumCPU()
		if maxConcurrency <= 0 {
			maxConcurrency = minWorkers
		}
	}

	total := len(jobs)
	results := make([]domain.JobResult, total)

	// A plain errgroup, not WithContext: the group context would cancel
	// siblings on failure, and workers here never return errors anyway.
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrency)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = s.runner.Execute(ctx, job, total)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: total, Results: results}
	var failures error
	for _, res := range results {
		if res.Success {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		failures = multierror.Append(failures,
			fmt.Errorf("job %d (%s): %s", res.Index+1, jobs[res.Index].InputPath, res.ErrorMessage))
	}
	return summary, failures
}
