// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Sink serializes log lines from concurrent workers onto a single writer.
// Producers hand over whole lines; one consumer goroutine performs the
// writes, so output from parallel tool processes never interleaves within
// a line.
type Sink struct {
	lines chan string
	done  chan struct{}
	w     io.Writer
}

// NewSink starts the consumer goroutine for w.
func NewSink(w io.Writer) *Sink {
	s := &Sink{
		lines: make(chan string, 64),
		done:  make(chan struct{}),
		w:     w,
	}
	go s.drain()
	return s
}

func (s *Sink) drain() {
	defer close(s.done)
	for line := range s.lines {
		fmt.Fprintln(s.w, line)
	}
}

// Line queues one whole line for output.
func (s *Sink) Line(line string) {
	s.lines <- line
}

// Printf formats a single line and queues it.
func (s *Sink) Printf(format string, args ...any) {
	s.Line(fmt.Sprintf(format, args...))
}

// Close flushes queued lines and stops the consumer. No Line or Printf call
// may follow.
func (s *Sink) Close() {
	close(s.lines)
	<-s.done
}

// tailLines bounds the per-task output retained for failure messages.
const tailLines = 5

// lineWriter adapts a task's combined process output stream into the sink:
// it splits the stream into lines, forwards each as it completes, and keeps
// a bounded tail for the Result message when the task fails.
type lineWriter struct {
	sink   *Sink
	prefix string
	buf    []byte
	tail   []string
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.buf = append(lw.buf, p...)
	for {
		i := bytes.IndexByte(lw.buf, '\n')
		if i < 0 {
			break
		}
		lw.emit(string(lw.buf[:i]))
		lw.buf = lw.buf[i+1:]
	}
	return len(p), nil
}

// flush emits any trailing output that did not end in a newline.
func (lw *lineWriter) flush() {
	if len(lw.buf) > 0 {
		lw.emit(string(lw.buf))
		lw.buf = nil
	}
}

func (lw *lineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	lw.sink.Printf("  [%s] %s", lw.prefix, line)
	lw.tail = append(lw.tail, line)
	if len(lw.tail) > tailLines {
		lw.tail = lw.tail[1:]
	}
}

// Tail returns the retained output tail, newline-joined.
func (lw *lineWriter) Tail() string {
	return strings.Join(lw.tail, "\n")
}
