// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package maketx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/tx-convert/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	lookPathResult string
	lookPathErr    error
	runFunc        func(ctx context.Context, name string, args []string, out io.Writer) error

	ranName string
	ranArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	return m.lookPathResult, m.lookPathErr
}

func (m *mockExecutor) RunStream(ctx context.Context, name string, args []string, out io.Writer) error {
	m.ranName = name
	m.ranArgs = args
	if m.runFunc != nil {
		return m.runFunc(ctx, name, args, out)
	}
	return nil
}

func TestNewTool(t *testing.T) {
	binPath := filepath.Join(t.TempDir(), "maketx")
	if err := os.WriteFile(binPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		exec     *mockExecutor
		wantPath string
		errMsg   string
	}{
		{
			name:     "explicit path to existing file",
			path:     binPath,
			exec:     &mockExecutor{},
			wantPath: binPath,
		},
		{
			name:   "explicit path missing",
			path:   filepath.Join(t.TempDir(), "nope", "maketx"),
			exec:   &mockExecutor{},
			errMsg: "maketx path",
		},
		{
			name:   "explicit path is a directory",
			path:   t.TempDir(),
			exec:   &mockExecutor{},
			errMsg: "is a directory",
		},
		{
			name:     "empty path falls back to PATH lookup",
			path:     "",
			exec:     &mockExecutor{lookPathResult: "/usr/local/bin/maketx"},
			wantPath: "/usr/local/bin/maketx",
		},
		{
			name:   "empty path and not on PATH",
			path:   "",
			exec:   &mockExecutor{lookPathErr: errors.New("not found")},
			errMsg: "not found on PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := newTool(tt.path, tt.exec)
			if tt.errMsg != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q should contain %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tool.Path() != tt.wantPath {
				t.Errorf("path = %q, want %q", tool.Path(), tt.wantPath)
			}
		})
	}
}

func TestToolConvert(t *testing.T) {
	task := types.Task{
		SourcePath: "rock_albedo.png",
		TargetPath: "rock_albedo.tx",
		Args:       []string{"rock_albedo.png", "-o", "rock_albedo.tx"},
	}

	t.Run("streams combined output", func(t *testing.T) {
		exec := &mockExecutor{
			runFunc: func(ctx context.Context, name string, args []string, out io.Writer) error {
				io.WriteString(out, "Writing rock_albedo.tx\n")
				return nil
			},
		}
		tool := &Tool{path: "/opt/arnold/maketx", exec: exec}

		var out bytes.Buffer
		if err := tool.Convert(context.Background(), task, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exec.ranName != "/opt/arnold/maketx" {
			t.Errorf("ran %q, want the resolved tool path", exec.ranName)
		}
		if len(exec.ranArgs) != len(task.Args) {
			t.Errorf("ran with %d args, want %d", len(exec.ranArgs), len(task.Args))
		}
		if !strings.Contains(out.String(), "Writing rock_albedo.tx") {
			t.Errorf("output %q missing streamed line", out.String())
		}
	})

	t.Run("nonzero exit is a wrapped error", func(t *testing.T) {
		exec := &mockExecutor{
			runFunc: func(ctx context.Context, name string, args []string, out io.Writer) error {
				io.WriteString(out, "ERROR: could not open input\n")
				return errors.New("exit status 1")
			},
		}
		tool := &Tool{path: "/opt/arnold/maketx", exec: exec}

		var out bytes.Buffer
		err := tool.Convert(context.Background(), task, &out)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), task.SourcePath) {
			t.Errorf("error %q should mention the source path", err)
		}
	})
}
