// Package ingest is the line-oriented ASCII reader the CLI collaborator
// feeds the core with: it is explicitly out of the core's scope (spec 1)
// but is carried here as the external collaborator the CLI needs to turn a
// file or stdin into the ordered byte-string collections symdel.Within and
// symdel.Cross expect.
package ingest

import (
	"bufio"
	"io"

	"github.com/cdr3match/symdel/symdelerr"
)

// ReadLines reads newline-delimited records from r, one string per line
// (trailing '\r' is trimmed to tolerate CRLF input), and returns them in
// file order. Every byte must be in 0x00-0x7F; the first violation aborts
// with symdelerr.NonAsciiInput naming the 0-based row and offending line.
func ReadLines(r io.Reader) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines [][]byte
	row := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if i := firstNonASCII(line); i >= 0 {
			return nil, symdelerr.NonAsciiInput(row, string(line))
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		lines = append(lines, cp)
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func firstNonASCII(b []byte) int {
	for i, c := range b {
		if c > 0x7F {
			return i
		}
	}
	return -1
}
