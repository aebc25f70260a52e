// Package diag renders fatal front-end errors against the source they came from.
package diag

import (
	"fmt"
	"strings"
)

// CodeError is a positioned diagnostic. Line and Column are 1-based.
type CodeError struct {
	Kind    string // e.g. "Parse error"
	Message string
	Line    int
	Column  int
}

func (e CodeError) Error() string {
	return fmt.Sprintf("%s: %s (at %d:%d)", e.Kind, e.Message, e.Line, e.Column)
}

// Format renders e the way the CLI prints it:
//
//	Parse error: expected next token to be ), got EOF instead
//	  --> prog.corny:1:7
//	   |
//	 1 | print(
//	   |       ^
func (e CodeError) Format(file, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Message)

	line, col := e.Line, e.Column
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", file, line, col)

	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return b.String()
	}
	text := lines[line-1]
	gutter := len(fmt.Sprint(line))
	pad := strings.Repeat(" ", gutter)
	fmt.Fprintf(&b, " %s |\n", pad)
	fmt.Fprintf(&b, " %d | %s\n", line, text)
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(&b, " %s | %s^\n", pad, caretIndent(text, col-1))
	return b.String()
}

// caretIndent keeps tabs so the caret lines up with the source line.
func caretIndent(text string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}
