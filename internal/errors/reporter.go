package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"toy/internal/ast"
)

// Level is the severity of a CompilerError.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warning"
	LevelNote  Level = "note"
	LevelHelp  Level = "help"
)

// Suggestion is a suggested fix attached to a CompilerError.
type Suggestion struct {
	Message     string
	Replacement string
	Position    ast.Position
	Length      int
}

// CompilerError is the user-facing diagnostic the CLI and LSP both render:
// a low-level TypeCheckError or parser.ParseError converted into a coded,
// positioned message with optional suggestions/notes/help text.
type CompilerError struct {
	Level       Level
	Code        string
	Message     string
	Position    ast.Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// ErrorReporter renders CompilerErrors against one source file, Rust-compiler
// style: a coded header, a `--> file:line:col` location line, the offending
// source line with a caret marker, then any notes/help text.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter returns a reporter for filename's source text.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FormatError renders err as a multi-line diagnostic string.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder

	levelColor := er.levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	width := er.lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))

	if err.Position.Line > 1 && err.Position.Line-1 <= len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, err.Position.Line-1)), dim("│"), er.lines[err.Position.Line-2])
	}

	if err.Position.Line >= 1 && err.Position.Line <= len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), er.lines[err.Position.Line-1])
		marker := er.marker(err.Position.Column, err.Length, err.Level)
		fmt.Fprintf(&b, "%s %s %s\n", indent, dim("│"), marker)
	}

	if err.Position.Line < len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, err.Position.Line+1)), dim("│"), er.lines[err.Position.Line])
	}

	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&b, "%s %s %s: %s\n", indent, suggestionColor("help"), suggestionColor("try"), s.Message)
			} else {
				fmt.Fprintf(&b, "%s %s %s\n", indent, suggestionColor("    "), s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))
				replacement := strings.ReplaceAll(s.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				fmt.Fprintf(&b, "%s %s %s\n", indent, suggestionColor("│"), suggestionColor(replacement))
			}
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

func (er *ErrorReporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case LevelError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case LevelWarn:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case LevelNote:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case LevelHelp:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (er *ErrorReporter) marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == LevelWarn {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

func (er *ErrorReporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
