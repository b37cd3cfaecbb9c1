// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package maketx wraps the external maketx executable: locating it, building
// per-texture argument lists, and running conversions with streamed output.
package maketx

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pdiddy/tx-convert/pkg/types"
)

// binMaketx is the binary looked up on PATH when no explicit path is set.
const binMaketx = "maketx"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunStream(ctx context.Context, name string, args []string, out io.Writer) error
}

// osExecutor is the production executor backed by os/exec. RunStream merges
// stdout and stderr into a single stream so diagnostic lines arrive in the
// order the tool emitted them.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunStream(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Tool is a resolved maketx executable.
type Tool struct {
	path string
	exec executor
}

// Path returns the resolved executable path.
func (t *Tool) Path() string { return t.path }

// NewTool resolves the maketx executable. An explicit path is verified to
// exist and point at a regular file; an empty path falls back to a PATH
// lookup. Resolution failure is a configuration error and stops the batch
// before it starts.
func NewTool(path string) (*Tool, error) {
	return newTool(path, defaultExec)
}

func newTool(path string, exec executor) (*Tool, error) {
	if path == "" {
		found, err := exec.LookPath(binMaketx)
		if err != nil {
			return nil, fmt.Errorf("maketx not found on PATH: %w", err)
		}
		return &Tool{path: found, exec: exec}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("maketx path %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("maketx path %s is a directory", path)
	}
	return &Tool{path: path, exec: exec}, nil
}

// Convert runs the tool for one task, streaming combined stdout and stderr
// into out. A nonzero exit or spawn failure is returned as an error; the
// caller decides how to report it.
func (t *Tool) Convert(ctx context.Context, task types.Task, out io.Writer) error {
	if err := t.exec.RunStream(ctx, t.path, task.Args, out); err != nil {
		return fmt.Errorf("maketx %s: %w", task.SourcePath, err)
	}
	return nil
}
