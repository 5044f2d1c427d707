package service

import (
	"context"
	"time"

	"imagetiler/internal/core/domain"
	"imagetiler/internal/core/ports"
	"imagetiler/internal/pack"
)

// Runner executes one job end-to-end: external tiler, then tile packing,
// then the metadata descriptor.
type Runner struct {
	tiler     ports.Tiler
	packer    *pack.Packer
	reporter  *Reporter
	tileSize  int
	keepTiles bool
}

// NewRunner creates a new Runner.
func NewRunner(tiler ports.Tiler, packer *pack.Packer, reporter *Reporter, tileSize int, keepTiles bool) *Runner {
	return &Runner{
		tiler:     tiler,
		packer:    packer,
		reporter:  reporter,
		tileSize:  tileSize,
		keepTiles: keepTiles,
	}
}

// Execute runs job to completion and returns its result. Every failure is
// captured into the result; nothing escapes to abort sibling jobs.
func (r *Runner) Execute(ctx context.Context, job domain.Job, total int) domain.JobResult {
	start := time.Now()
	result := domain.JobResult{Index: job.Index}

	dims, err := r.tiler.Tile(ctx, job.InputPath, job.OutputPath)
	if err != nil {
		return r.fail(job, result, domain.WrapIO(err), start)
	}
	result.Width = dims.Width
	result.Height = dims.Height
	r.reporter.JobStarted(job, dims)

	entries, err := r.packer.Pack(job.OutputPath, pack.BinaryName, r.keepTiles)
	if err != nil {
		return r.fail(job, result, err, start)
	}

	if err := pack.WriteMetadata(job.OutputPath, dims.Width, dims.Height, r.tileSize, entries); err != nil {
		return r.fail(job, result, err, start)
	}

	result.Success = true
	result.TileCount = len(entries)
	result.Elapsed = time.Since(start)
	r.reporter.JobDone(job, len(entries), total)
	return result
}

func (r *Runner) fail(job domain.Job, result domain.JobResult, err error, start time.Time) domain.JobResult {
	result.Success = false
	result.ErrorMessage = err.Error()
	result.Elapsed = time.Since(start)
	r.reporter.JobFailed(job, err)
	return result
}
