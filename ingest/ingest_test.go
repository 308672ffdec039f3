package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/cdr3match/symdel/symdelerr"
)

func TestReadLinesBasic(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("fizz\nfuzz\nbuzz\n"))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	want := []string{"fizz", "fuzz", "buzz"}
	if len(lines) != len(want) {
		t.Fatalf("len = %d, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if string(lines[i]) != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestReadLinesTrimsCR(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("fizz\r\nfuzz\r\n"))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if string(lines[0]) != "fizz" || string(lines[1]) != "fuzz" {
		t.Errorf("got %q, %q", lines[0], lines[1])
	}
}

func TestReadLinesNoTrailingNewline(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("fizz\nfuzz"))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 || string(lines[1]) != "fuzz" {
		t.Errorf("got %v", lines)
	}
}

func TestReadLinesRejectsNonASCII(t *testing.T) {
	_, err := ReadLines(strings.NewReader("fizz\nfu\xc3\x9fz\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, symdelerr.KindNonAsciiInput) {
		t.Errorf("error %v does not wrap KindNonAsciiInput", err)
	}
}

func TestReadLinesEmpty(t *testing.T) {
	lines, err := ReadLines(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("got %d lines, want 0", len(lines))
	}
}
