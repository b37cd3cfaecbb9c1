// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestSinkLineAtomicity(t *testing.T) {
	const producers = 8
	const linesEach = 200

	var out bytes.Buffer
	sink := NewSink(&out)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < linesEach; i++ {
				sink.Printf("producer-%d line-%d payload", p, i)
			}
		}(p)
	}
	wg.Wait()
	sink.Close()

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != producers*linesEach {
		t.Fatalf("got %d lines, want %d", len(lines), producers*linesEach)
	}
	for _, line := range lines {
		var p, i int
		if _, err := fmt.Sscanf(line, "producer-%d line-%d payload", &p, &i); err != nil {
			t.Fatalf("corrupted line %q: %v", line, err)
		}
	}
}

func TestLineWriterSplitsAndTails(t *testing.T) {
	var out bytes.Buffer
	sink := NewSink(&out)
	lw := &lineWriter{sink: sink, prefix: "rock_albedo.png"}

	// Chunks arrive mid-line, as pipe reads do.
	lw.Write([]byte("Reading rock_al"))
	lw.Write([]byte("bedo.png\r\nResizing 4096x4096\nWriting"))
	lw.Write([]byte(" output"))
	lw.flush()
	sink.Close()

	got := out.String()
	for _, want := range []string{
		"  [rock_albedo.png] Reading rock_albedo.png\n",
		"  [rock_albedo.png] Resizing 4096x4096\n",
		"  [rock_albedo.png] Writing output\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	tail := lw.Tail()
	if !strings.Contains(tail, "Reading rock_albedo.png") || !strings.Contains(tail, "Writing output") {
		t.Errorf("tail %q should retain emitted lines", tail)
	}
}

func TestLineWriterTailIsBounded(t *testing.T) {
	sink := NewSink(&bytes.Buffer{})
	lw := &lineWriter{sink: sink, prefix: "t.png"}

	for i := 0; i < tailLines*3; i++ {
		fmt.Fprintf(lw, "line %d\n", i)
	}
	sink.Close()

	tail := strings.Split(lw.Tail(), "\n")
	if len(tail) != tailLines {
		t.Fatalf("tail has %d lines, want %d", len(tail), tailLines)
	}
	if tail[len(tail)-1] != fmt.Sprintf("line %d", tailLines*3-1) {
		t.Errorf("tail should keep the newest lines, got %v", tail)
	}
}
