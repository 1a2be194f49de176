// Package lexer tokenizes bahasapas source text into a token stream.
//
// Tokenize is a pure function of its input: it never mutates shared state
// and produces the same tokens and diagnostics for the same source. Column
// tracking is rune-based; keyword and word-operator classification folds
// case via golang.org/x/text/cases so identifiers outside ASCII fold
// correctly.
package lexer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/bahasapas-lang/bahasapasc/internal/diagnostics"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

var foldCase = cases.Fold()

// lexer holds the mutable cursor state for a single Tokenize call.
type lexer struct {
	src    []rune
	pos    int
	line   int
	column int
	diags  []diagnostics.Diagnostic
}

// Tokenize consumes source in full and returns its token stream together
// with any lexical warnings. Two conditions stop tokenizing early: an
// unterminated `{ }`/`(* *)` comment and an unterminated string literal;
// both still append a trailing warning diagnostic and return the tokens
// collected so far. An unrecognized glyph emits a warning but does not
// stop tokenizing.
func Tokenize(source string) ([]token.Token, []diagnostics.Diagnostic) {
	l := &lexer{src: []rune(source), line: 1, column: 1}
	var tokens []token.Token

	for l.pos < len(l.src) {
		ch := l.src[l.pos]

		if unicode.IsSpace(ch) {
			l.advanceRune(ch)
			continue
		}

		if ch == '{' {
			if !l.skipBraceComment() {
				return tokens, l.diags
			}
			continue
		}

		if l.startsWith("(*") {
			if !l.skipStarComment() {
				return tokens, l.diags
			}
			continue
		}

		if sym, ok := l.matchLongest(); ok {
			kind, known := token.ClassifyPunctOrOp(sym)
			if !known {
				kind = token.UNKNOWN
			}
			tokens = append(tokens, token.Token{Kind: kind, Lexeme: sym, Pos: l.here()})
			l.advanceN(len(sym))
			continue
		}

		if ch == '\'' {
			tok, ok := l.readString()
			if !ok {
				return tokens, l.diags
			}
			tokens = append(tokens, tok)
			continue
		}

		if isIdentStart(ch) {
			tokens = append(tokens, l.readIdentifier())
			continue
		}

		if unicode.IsDigit(ch) {
			tokens = append(tokens, l.readNumber())
			continue
		}

		if kind, known := token.ClassifyPunctOrOp(string(ch)); known {
			tokens = append(tokens, token.Token{Kind: kind, Lexeme: string(ch), Pos: l.here()})
			l.advanceRune(ch)
			continue
		}

		l.diags = append(l.diags, diagnostics.New(diagnostics.SevWarning, l.here(), "Unknown token '%c'", ch))
		tokens = append(tokens, token.Token{Kind: token.UNKNOWN, Lexeme: string(ch), Pos: l.here()})
		l.advanceRune(ch)
	}

	return tokens, l.diags
}

func (l *lexer) here() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *lexer) advanceRune(ch rune) {
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.column++
		l.pos++
	}
}

func (l *lexer) startsWith(s string) bool {
	r := []rune(s)
	if l.pos+len(r) > len(l.src) {
		return false
	}
	for i, c := range r {
		if l.src[l.pos+i] != c {
			return false
		}
	}
	return true
}

func (l *lexer) matchLongest() (string, bool) {
	for _, sym := range token.LongestFirst {
		if l.startsWith(sym) {
			return sym, true
		}
	}
	return "", false
}

// skipBraceComment skips a `{ ... }` comment. Returns false if unterminated
// (the caller must stop tokenizing).
func (l *lexer) skipBraceComment() bool {
	end := l.find('}', l.pos+1)
	if end < 0 {
		l.diags = append(l.diags, diagnostics.New(diagnostics.SevWarning, l.here(), "Unclosed comment at line %d", l.line))
		return false
	}
	l.consumeThrough(end)
	return true
}

// skipStarComment skips a `(* ... *)` comment. Returns false if unterminated.
func (l *lexer) skipStarComment() bool {
	end := l.findStr("*)", l.pos+2)
	if end < 0 {
		l.diags = append(l.diags, diagnostics.New(diagnostics.SevWarning, l.here(), "Unclosed comment at line %d", l.line))
		return false
	}
	l.consumeThrough(end + 1)
	return true
}

func (l *lexer) find(target rune, from int) int {
	for i := from; i < len(l.src); i++ {
		if l.src[i] == target {
			return i
		}
	}
	return -1
}

func (l *lexer) findStr(target string, from int) int {
	t := []rune(target)
	for i := from; i+len(t) <= len(l.src); i++ {
		match := true
		for j, c := range t {
			if l.src[i+j] != c {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// consumeThrough advances the cursor past src[endInclusive], updating
// line/column for any newlines consumed along the way.
func (l *lexer) consumeThrough(endInclusive int) {
	for l.pos <= endInclusive {
		l.advanceRune(l.src[l.pos])
	}
}

func (l *lexer) readString() (token.Token, bool) {
	start := l.pos
	startPos := l.here()
	j := l.pos + 1
	for j < len(l.src) {
		if l.src[j] == '\'' {
			if j+1 < len(l.src) && l.src[j+1] == '\'' {
				j += 2
				continue
			}
			break
		}
		if l.src[j] == '\n' {
			break
		}
		j++
	}
	if j >= len(l.src) || l.src[j] != '\'' {
		l.diags = append(l.diags, diagnostics.New(diagnostics.SevWarning, startPos, "Unterminated string at line %d", startPos.Line))
		return token.Token{}, false
	}
	lexeme := string(l.src[start : j+1])
	tok := token.Token{Kind: token.STRING_LITERAL, Lexeme: lexeme, Pos: startPos}
	for l.pos <= j {
		l.advanceRune(l.src[l.pos])
	}
	return tok, true
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentCont(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func (l *lexer) readIdentifier() token.Token {
	start := l.pos
	pos := l.here()
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.advanceRune(l.src[l.pos])
	}
	lexeme := string(l.src[start:l.pos])
	lower := foldCase.String(lexeme)
	lower = strings.ToLower(lower)
	kind := token.ClassifyWordOrOperatorWord(lower)
	return token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
}

// readNumber reads a digit run with an optional fractional part. A dot not
// immediately followed by a digit is left unconsumed so it can be
// re-tokenized as DOT or combined into `..` by the main loop.
func (l *lexer) readNumber() token.Token {
	start := l.pos
	pos := l.here()
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.advanceRune(l.src[l.pos])
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && unicode.IsDigit(l.src[l.pos+1]) {
		l.advanceRune(l.src[l.pos]) // consume the dot
		for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			l.advanceRune(l.src[l.pos])
		}
	}
	lexeme := string(l.src[start:l.pos])
	return token.Token{Kind: token.NUMBER, Lexeme: lexeme, Pos: pos}
}
