package render

import "strings"

// Writer accumulates SQL text and tracks the indentation of nested queries.
type Writer struct {
	sql    strings.Builder
	indent string
	depth  int
}

// NewWriter creates a writer indenting nested levels with indent.
func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}

// WriteString appends s.
func (w *Writer) WriteString(s string) {
	w.sql.WriteString(s)
}

// Newline starts a new line at the current indentation.
func (w *Writer) Newline() {
	w.sql.WriteByte('\n')
	for i := 0; i < w.depth; i++ {
		w.sql.WriteString(w.indent)
	}
}

// Indent increases the indentation of subsequent lines.
func (w *Writer) Indent() {
	w.depth++
}

// Dedent decreases the indentation of subsequent lines.
func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

// Depth returns the current indentation level.
func (w *Writer) Depth() int {
	return w.depth
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.sql.String()
}
