package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Drift compares a generated file on disk with freshly generated code.
type Drift struct {
	Path  string
	Diffs []diffpatch.Diff // line diffs, empty when up to date
}

// Stale reports whether the file on disk differs.
func (d *Drift) Stale() bool { return len(d.Diffs) > 0 }

// CheckFile compares the file at path with want. A missing file differs from
// any code.
func CheckFile(path string, want []byte) (*Drift, error) {
	have, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d := &Drift{Path: path}
	if !bytes.Equal(have, want) {
		d.Diffs = LineDiff(string(have), string(want))
	}
	return d, nil
}

// LineDiff diffs a and b line by line.
func LineDiff(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// DiffLine is one line of a rendered diff. Elided context is reported as a
// single DiffEqual line with Elided set.
type DiffLine struct {
	Op     diffpatch.Operation
	Text   string
	Elided int
}

// Lines renders the drift as lines, keeping context unchanged lines around
// each change.
func (d *Drift) Lines(context int) []DiffLine {
	var out []DiffLine
	for i, diff := range d.Diffs {
		lines := splitLines(diff.Text)
		if diff.Type != diffpatch.DiffEqual {
			for _, l := range lines {
				out = append(out, DiffLine{Op: diff.Type, Text: l})
			}
			continue
		}
		head, tail := context, context
		if i == 0 {
			head = 0
		}
		if i == len(d.Diffs)-1 {
			tail = 0
		}
		if len(lines) <= head+tail {
			for _, l := range lines {
				out = append(out, DiffLine{Op: diffpatch.DiffEqual, Text: l})
			}
			continue
		}
		for _, l := range lines[:head] {
			out = append(out, DiffLine{Op: diffpatch.DiffEqual, Text: l})
		}
		out = append(out, DiffLine{Op: diffpatch.DiffEqual, Elided: len(lines) - head - tail})
		for _, l := range lines[len(lines)-tail:] {
			out = append(out, DiffLine{Op: diffpatch.DiffEqual, Text: l})
		}
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
