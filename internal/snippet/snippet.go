// Package snippet provides the replacement lines inserted in place of the
// removed block: the built-in hero slider, a plain text file, or a fenced
// code block picked out of a Markdown document.
package snippet

import (
	"bytes"
	"errors"

	"github.com/ezerfernandes/blockswap/internal/region"
)

// Hero is the built-in replacement: a banner comment and the HeroSlider
// component fed from the database, followed by a blank line.
func Hero() region.Lines {
	return region.Lines{
		[]byte("      {/* ═══════════════════════════════════════════════════════ */}\n"),
		[]byte("      {/* HERO SLIDER - Dynamic from Database                    */}\n"),
		[]byte("      {/* ═══════════════════════════════════════════════════════ */}\n"),
		[]byte("      <HeroSlider slides={slides} />\n"),
		[]byte("\n"),
	}
}

// FromText uses every line of source verbatim. A missing final line break is
// added so the line after the block does not get glued to the snippet.
func FromText(source []byte) region.Lines {
	if len(source) != 0 && source[len(source)-1] != '\n' {
		source = append(bytes.Clone(source), '\n')
	}

	return region.Split(source)
}

// FromMarkdown returns the code of the first fenced block in source accepted
// by filter. A nil filter accepts any block.
func FromMarkdown(source []byte, filter Filter) (region.Lines, error) {
	blocks, err := Unfence(source)
	if err != nil {
		return nil, err
	}

	block := blocks.First(filter)
	if block == nil {
		return nil, ErrNoSnippet
	}

	return region.Split(block.Code), nil
}

// Indent prefixes every non-blank line with n spaces.
func Indent(lines region.Lines, n int) region.Lines {
	if n <= 0 {
		return lines
	}

	prefix := bytes.Repeat([]byte{' '}, n)
	res := make(region.Lines, 0, len(lines))

	for _, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			res = append(res, line)

			continue
		}

		res = append(res, append(append([]byte{}, prefix...), line...))
	}

	return res
}

// ErrNoSnippet is returned by [FromMarkdown] when no fenced block matches.
var ErrNoSnippet = errors.New("no matching code block")
