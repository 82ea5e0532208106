// Package loader reads program listings for the emulator.
//
// A listing is a text file with one 32-bit instruction word per line,
// written in hexadecimal with an optional 0x prefix. Blank lines are
// skipped and everything after a '#' is a comment.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Program represents a loaded program ready for execution: one 32-bit
// word per instruction, consumed in order by the emulator.
type Program struct {
	// Words contains the packed instruction words.
	Words []uint32
}

// Load reads and parses the listing at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program listing: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Parse reads a listing from r.
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		text := strings.TrimPrefix(strings.ToLower(line), "0x")
		word, err := strconv.ParseUint(text, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q is not a 32-bit hex word: %w",
				lineNo, line, err)
		}

		prog.Words = append(prog.Words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program listing: %w", err)
	}

	return prog, nil
}
