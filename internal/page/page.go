// Package page parses cheat-sheet pages into typed lines.
//
// A page is a line-oriented markdown dialect. Two historical marker
// conventions exist for example commands: backtick-wrapped lines and
// indented lines. Both are recognized per line, independently, so a
// document may mix them. Parsing is pure and never fails; lines that
// match no marker are skipped.
package page

import "strings"

// Kind identifies the role of a page line.
type Kind int

const (
	// Title is the page heading ("# name").
	Title Kind = iota
	// Description is a summary line ("> text").
	Description
	// ExampleText describes what the following command does ("- text").
	ExampleText
	// ExampleCode is a runnable command, either backtick-wrapped or
	// indented by four spaces / a tab. May contain {{placeholders}}.
	ExampleCode
)

// Line is a single classified page line.
type Line struct {
	Kind Kind
	Text string
}

// Parse converts raw page text into an ordered sequence of typed lines.
// Order mirrors the source document. Blank and unrecognized lines are
// dropped.
func Parse(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		if l, ok := classify(raw); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// classify maps one raw line to its typed form.
// Returns false for blank lines and lines with no recognized marker.
func classify(raw string) (Line, bool) {
	if strings.TrimSpace(raw) == "" {
		return Line{}, false
	}

	switch {
	case strings.HasPrefix(raw, "#"):
		return Line{Title, trimMarker(raw, '#')}, true
	case strings.HasPrefix(raw, ">"):
		return Line{Description, trimMarker(raw, '>')}, true
	case strings.HasPrefix(raw, "-"):
		return Line{ExampleText, trimMarker(raw, '-')}, true
	case strings.HasPrefix(raw, "    ") || strings.HasPrefix(raw, "\t"):
		// Legacy syntax: commands indented instead of backtick-wrapped.
		return Line{ExampleCode, strings.TrimSpace(raw)}, true
	case len(raw) > 1 && strings.HasPrefix(raw, "`") && strings.HasSuffix(raw, "`"):
		return Line{ExampleCode, strings.Trim(raw, "`")}, true
	}

	return Line{}, false
}

// trimMarker strips a leading run of the marker character plus spaces.
func trimMarker(raw string, marker byte) string {
	return strings.TrimLeft(raw, string(marker)+" ")
}
