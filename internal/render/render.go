// Package render produces the annotated tree listing.
//
// Nesting is purely depth based: each entry is indented by its component
// count minus one, and the enumeration order is the display order.
package render

import (
	"io"
	"strings"

	"github.com/papapumpkin/sunrise/internal/relpath"
)

// DefaultIndent is the number of spaces per depth level.
const DefaultIndent = 2

// Marker separates a description from what precedes it on its line.
const Marker = " // "

// Options controls presentation.
type Options struct {
	// Inline places a description on the entry's own line instead of on a
	// preceding line.
	Inline bool
	// Indent is the number of spaces per level. Values below 1 use DefaultIndent.
	Indent int
	// Emphasis decorates description text. Nil leaves it plain.
	Emphasis func(string) string
}

// Lines renders entries in order, attaching descriptions where present.
func Lines(descriptions map[relpath.Path]string, entries []relpath.Path, opts Options) []string {
	width := opts.Indent
	if width < 1 {
		width = DefaultIndent
	}
	emphasize := opts.Emphasis
	if emphasize == nil {
		emphasize = func(s string) string { return s }
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		level := max(entry.Depth()-1, 0)
		indent := strings.Repeat(" ", level*width)
		line := indent + entry.Native()

		desc, ok := descriptions[entry]
		switch {
		case !ok:
			lines = append(lines, line)
		case opts.Inline:
			lines = append(lines, line+Marker+emphasize(desc))
		default:
			lines = append(lines, indent+Marker+emphasize(desc), line)
		}
	}
	return lines
}

// Write renders entries to w, one line each.
func Write(w io.Writer, descriptions map[relpath.Path]string, entries []relpath.Path, opts Options) error {
	var b strings.Builder
	for _, line := range Lines(descriptions, entries, opts) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
