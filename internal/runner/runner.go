// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner executes conversion tasks through a bounded pool of
// external tool processes and reports one result per completed task.
package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pdiddy/tx-convert/pkg/types"
)

// Converter runs the external tool for one task, streaming its combined
// output into out. maketx.Tool is the production implementation.
type Converter interface {
	Convert(ctx context.Context, task types.Task, out io.Writer) error
}

// DefaultWorkers leaves one core free for the rest of the machine.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		return 1
	}
	return n
}

// Runner is the bounded job runner for one conversion batch.
type Runner struct {
	conv    Converter
	workers int
	sink    *Sink
}

// New builds a runner. A worker count below 1 falls back to DefaultWorkers.
func New(conv Converter, cfg types.RunnerConfig, sink *Sink) *Runner {
	workers := cfg.Workers
	if workers < 1 {
		workers = DefaultWorkers()
	}
	return &Runner{conv: conv, workers: workers, sink: sink}
}

// Workers returns the concurrency limit in effect.
func (r *Runner) Workers() int { return r.workers }

// NeedsConversion reports whether target is missing or stale relative to
// source. Equal timestamps count as stale: filesystems with coarse mtime
// resolution make equality ambiguous, so the conservative answer is to
// re-convert.
func NeedsConversion(source, target string) (bool, error) {
	dst, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	src, err := os.Stat(source)
	if err != nil {
		return false, err
	}
	return !dst.ModTime().After(src.ModTime()), nil
}

// Run executes the batch: at most Workers tasks run concurrently, each
// worker pulling the next pending task and running it to completion. Results
// arrive in completion order. Cancelling ctx stops launching new tasks and
// terminates in-flight processes; tasks never started produce no result.
func (r *Runner) Run(ctx context.Context, tasks []types.Task) ([]types.Result, types.Summary) {
	jobs := make(chan types.Task)
	results := make(chan types.Result)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- r.runOne(ctx, task)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			select {
			case jobs <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		all     []types.Result
		summary types.Summary
	)
	for res := range results {
		all = append(all, res)
		summary.Add(res)
	}

	r.sink.Printf("")
	r.sink.Printf("Batch summary: %d converted, %d skipped, %d failed (total: %d)",
		summary.Succeeded, summary.Skipped, summary.Failed, summary.Total())

	return all, summary
}

// runOne applies the skip policy, then runs the tool and turns the exit
// status into a result. A failure here never affects sibling tasks.
func (r *Runner) runOne(ctx context.Context, task types.Task) types.Result {
	base := filepath.Base(task.SourcePath)

	needed, err := NeedsConversion(task.SourcePath, task.TargetPath)
	if err != nil {
		r.sink.Printf("failed:    %s (%v)", base, err)
		return types.Result{Task: task, Outcome: types.OutcomeFailed, Message: err.Error()}
	}
	if !needed {
		r.sink.Printf("skipped:   %s (up-to-date %s exists)", base, filepath.Base(task.TargetPath))
		return types.Result{Task: task, Outcome: types.OutcomeSkipped, Message: "up-to-date output exists"}
	}

	lw := &lineWriter{sink: r.sink, prefix: base}
	start := time.Now()
	err = r.conv.Convert(ctx, task, lw)
	lw.flush()
	elapsed := time.Since(start)

	if err != nil {
		msg := lw.Tail()
		if msg == "" {
			msg = err.Error()
		}
		r.sink.Printf("failed:    %s (%v)", base, err)
		return types.Result{Task: task, Outcome: types.OutcomeFailed, Message: msg, Duration: elapsed}
	}

	r.sink.Printf("converted: %s -> %s", base, filepath.Base(task.TargetPath))
	return types.Result{Task: task, Outcome: types.OutcomeSucceeded, Duration: elapsed}
}
