// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Outcome is the terminal state of a conversion task.
type Outcome string

const (
	// OutcomeSkipped means no process was launched because an up-to-date
	// output already exists.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeSucceeded means the external tool exited with status 0.
	OutcomeSucceeded Outcome = "succeeded"

	// OutcomeFailed means the tool exited nonzero or could not be launched.
	OutcomeFailed Outcome = "failed"
)

// Task is a single conversion: one source texture, one target path, and the
// full tool argument list. Tasks are immutable once built.
type Task struct {
	// SourcePath is the input texture file.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TargetPath is the .tx file the tool writes.
	TargetPath string `json:"target_path" yaml:"target_path"`

	// Args is the complete argument list passed to the external tool.
	Args []string `json:"args" yaml:"args"`
}

// Result records the outcome of one task after execution or a skip decision.
type Result struct {
	Task     Task          `json:"task" yaml:"task"`
	Outcome  Outcome       `json:"outcome" yaml:"outcome"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summary holds per-batch outcome counts.
type Summary struct {
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	Skipped   int `json:"skipped" yaml:"skipped"`
}

// Total returns the total number of tasks that produced a result.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}

// HasFailures reports whether any task failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Add counts one result into the summary.
func (s *Summary) Add(r Result) {
	switch r.Outcome {
	case OutcomeSucceeded:
		s.Succeeded++
	case OutcomeFailed:
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	}
}
