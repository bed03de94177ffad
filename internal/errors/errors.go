// Package errors formats compiler diagnostics with source context: the
// file and position, the offending line, and a caret pointing at the
// error column.
package errors

import (
	"fmt"
	"strings"

	"github.com/alicelang/go-alice/internal/lexer"
)

// CompilerError is a single diagnostic with position and source
// context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// New creates a compiler error.
func New(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// FromLexerError wraps a lexical error with its source text for
// formatting.
func FromLexerError(err *lexer.Error, source string) *CompilerError {
	return &CompilerError{
		Pos:     err.Pos,
		Message: fmt.Sprintf("%s: %s", err.Kind, err.Msg),
		Source:  source,
		File:    err.File,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with source context. If color is true, ANSI
// escape codes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts the 1-based line from the source text.
func (e *CompilerError) getSourceLine(line int) string {
	if e.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
