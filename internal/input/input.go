// Package input reads puzzle input files.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrNoTransmission = errors.New("input: no transmission line")

// ReadLines returns every line of the file at path with line endings
// stripped.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input open failed (%s): %w", path, err)
	}
	defer f.Close()
	lines, err := Lines(f)
	if err != nil {
		return nil, fmt.Errorf("input read failed (%s): %w", path, err)
	}
	return lines, nil
}

// Lines splits r into lines, stripping a trailing CR from each.
func Lines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Transmission returns the first non-blank line, trimmed.
func Transmission(lines []string) (string, error) {
	for _, line := range lines {
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
	}
	return "", ErrNoTransmission
}
