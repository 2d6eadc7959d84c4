// Package region removes a marker-delimited block of lines from a text
// document and puts replacement lines in its place.
package region

import (
	"bytes"
	"errors"
	"strings"
)

// Lines is a document split into lines. Every line keeps its own terminator,
// so joining the lines back yields the original bytes.
type Lines [][]byte

// Split breaks source into lines after each '\n'. A trailing fragment without
// a line break becomes the last line.
func Split(source []byte) Lines {
	var lines Lines

	for len(source) > 0 {
		idx := bytes.IndexByte(source, '\n')
		if idx < 0 {
			lines = append(lines, source)

			break
		}

		lines = append(lines, source[:idx+1])
		source = source[idx+1:]
	}

	return lines
}

// Join concatenates the lines back into a single document.
func (l Lines) Join() []byte {
	return bytes.Join(l, nil)
}

// Markers delimit the block to replace. The block begins at the first line
// containing Start and ends at the next line that equals End once
// surrounding whitespace is trimmed. Both marker lines belong to the block.
type Markers struct {
	Start string
	End   string
}

// Validate reports whether both markers are usable.
func (m Markers) Validate() error {
	if len(m.Start) == 0 {
		return ErrEmptyStart
	}

	if len(m.End) == 0 {
		return ErrEmptyEnd
	}

	return nil
}

func (m Markers) isStart(line []byte) bool {
	return bytes.Contains(line, []byte(m.Start))
}

func (m Markers) isEnd(line []byte) bool {
	return strings.TrimSpace(string(line)) == m.End
}

// State is the scanner state while walking a document.
type State int

const (
	// Copying passes lines through unchanged.
	Copying State = iota
	// Skipping drops lines until the end marker.
	Skipping
)

func (s State) String() string {
	if s == Skipping {
		return "skipping"
	}

	return "copying"
}

// Result describes what a pass over the document did.
type Result struct {
	// Found is set when a start marker line was seen.
	Found bool
	// Terminated is set when the end marker closed the block.
	Terminated bool
	// StartLine and EndLine are 1-based positions of the marker lines. EndLine
	// is the last line of the document when the block is unterminated.
	StartLine int
	EndLine   int
	// Removed counts the original lines dropped, marker lines included.
	Removed int
	// Inserted counts the replacement lines emitted.
	Inserted int
}

// Err converts silent outcomes into errors when strict is set.
func (r Result) Err(strict bool) error {
	if !strict {
		return nil
	}

	if !r.Found {
		return ErrMarkerNotFound
	}

	if !r.Terminated {
		return ErrUnterminated
	}

	return nil
}

// scan walks source once and calls emit for every line kept in the Copying
// state and drop for every line that falls inside the block. The replacement
// hook runs once, when the start marker switches the state to Skipping.
func scan(source Lines, m Markers, keep, drop func(line []byte), enter func()) Result {
	var res Result

	state := Copying

	for i, line := range source {
		switch {
		case state == Copying && !res.Found && m.isStart(line):
			res.Found = true
			res.StartLine = i + 1
			res.EndLine = i + 1
			res.Removed++
			state = Skipping

			drop(line)
			enter()
		case state == Skipping && m.isEnd(line):
			res.Terminated = true
			res.EndLine = i + 1
			res.Removed++
			state = Copying

			drop(line)
		case state == Skipping:
			res.EndLine = i + 1
			res.Removed++

			drop(line)
		default:
			keep(line)
		}
	}

	return res
}

// Replace substitutes the first marker-delimited block of source with
// replacement. Lines outside the block are returned untouched and in order.
// Without a start marker the output equals the input. Without an end marker
// after the start marker everything to the end of the document is dropped;
// the returned Result tells the two cases apart.
func Replace(source Lines, m Markers, replacement Lines) (Lines, Result) {
	res := make(Lines, 0, len(source)+len(replacement))

	result := scan(source, m,
		func(line []byte) { res = append(res, line) },
		func([]byte) {},
		func() { res = append(res, replacement...) },
	)

	if result.Found {
		result.Inserted = len(replacement)
	}

	return res, result
}

// Read returns the lines Replace would drop, marker lines included.
func Read(source Lines, m Markers) (Lines, Result) {
	var block Lines

	result := scan(source, m,
		func([]byte) {},
		func(line []byte) { block = append(block, line) },
		func() {},
	)

	return block, result
}

var (
	// ErrEmptyStart is returned by [Markers.Validate] for an empty start marker.
	ErrEmptyStart = errors.New("start marker is empty")
	// ErrEmptyEnd is returned by [Markers.Validate] for an empty end marker.
	ErrEmptyEnd = errors.New("end marker is empty")
	// ErrMarkerNotFound is returned in strict mode when no line holds the start marker.
	ErrMarkerNotFound = errors.New("start marker not found")
	// ErrUnterminated is returned in strict mode when the end marker never
	// follows the start marker.
	ErrUnterminated = errors.New("missing end marker")
)
