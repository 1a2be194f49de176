// Package diagnostics provides the single message type shared by the
// lexer, parser and semantic analyzer: a severity-tagged, position-carrying
// note that a caller can sort, filter and render without any phase
// depending on a particular rendering concern.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// SevWarning is a non-fatal lexical warning (unknown glyph,
	// unterminated comment or unterminated string).
	SevWarning Severity = iota
	// SevSyntax is the single fatal parse error that stops parsing.
	SevSyntax
	// SevSemantic is an accumulated, non-fatal analysis error.
	SevSemantic
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "Warning"
	case SevSyntax:
		return "Syntax Error"
	case SevSemantic:
		return "Semantic Error"
	default:
		return "Diagnostic"
	}
}

// Diagnostic is a single reported issue.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
}

// New builds a Diagnostic at the given severity and position.
func New(sev Severity, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error satisfies the error interface so a Diagnostic can be returned or
// wrapped like any other Go error where convenient (e.g. the parser's
// single fatal syntax error).
func (d Diagnostic) Error() string {
	return d.String()
}

// String renders the diagnostic in the exact form the semantic analyzer's
// literal test scenarios require: "<Severity> at line L, column C: <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", d.Severity, d.Pos.Line, d.Pos.Column, d.Message)
}

// Format renders the diagnostic with a source-line excerpt and a caret
// pointing at the offending column, optionally using ANSI color. This is
// the CLI-facing rendering; the CORE never calls it.
func Format(d Diagnostic, source string, color bool) string {
	var sb strings.Builder
	sb.WriteString(d.String())
	sb.WriteString("\n")

	line := sourceLine(source, d.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// SortByPosition orders diags by source position. Diagnostics accumulate
// across three independent passes (lexer, parser, analyzer) and are
// appended pass-by-pass, so a lexer warning on a later line can precede a
// semantic error on an earlier one; natural-sorting the "line:column"
// string puts them back into reading order (and, unlike a plain
// lexicographic sort, orders column 10 after column 2 on the same line).
func SortByPosition(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return natural.Less(diags[i].Pos.String(), diags[j].Pos.String())
	})
}

// FormatAll renders a full diagnostic list in position order, each one as
// Format renders it, separated by blank lines and preceded by a count
// header when there is more than one.
func FormatAll(diags []Diagnostic, source string, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	SortByPosition(diags)
	if len(diags) == 1 {
		return Format(diags[0], source, color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostic(s):\n\n", len(diags))
	for i, d := range diags {
		sb.WriteString(Format(d, source, color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// HasFatal reports whether diags contains a syntax-level fatal diagnostic.
func HasFatal(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SevSyntax {
			return true
		}
	}
	return false
}
