package lexer

import (
	"testing"

	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeMinimalProgram(t *testing.T) {
	src := "program p; mulai selesai."
	toks, diags := Tokenize(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []token.Kind{
		token.KEYWORD, token.IDENTIFIER, token.SEMICOLON,
		token.KEYWORD, token.KEYWORD, token.DOT,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	last := toks[len(toks)-1]
	if last.Kind != token.DOT {
		t.Errorf("last token = %v, want DOT", last)
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	toks, _ := Tokenize("PROGRAM Program prOgRam")
	for _, tok := range toks {
		if tok.Kind != token.KEYWORD {
			t.Errorf("expected KEYWORD for %q, got %s", tok.Lexeme, tok.Kind)
		}
	}
}

func TestWordOperators(t *testing.T) {
	toks, _ := Tokenize("dan atau tidak bagi mod")
	want := []token.Kind{
		token.LOGICAL_OPERATOR, token.LOGICAL_OPERATOR, token.LOGICAL_OPERATOR,
		token.ARITHMETIC_OPERATOR, token.ARITHMETIC_OPERATOR,
	}
	for i, tok := range toks {
		if tok.Kind != want[i] {
			t.Errorf("token %d (%q): got %s, want %s", i, tok.Lexeme, tok.Kind, want[i])
		}
	}
}

func TestNumberTrailingDotNotConsumed(t *testing.T) {
	toks, _ := Tokenize("1..10")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}
	if toks[0].Kind != token.NUMBER || toks[0].Lexeme != "1" {
		t.Errorf("token 0 = %v, want NUMBER(1)", toks[0])
	}
	if toks[1].Kind != token.RANGE_OPERATOR {
		t.Errorf("token 1 = %v, want RANGE_OPERATOR", toks[1])
	}
	if toks[2].Kind != token.NUMBER || toks[2].Lexeme != "10" {
		t.Errorf("token 2 = %v, want NUMBER(10)", toks[2])
	}
}

func TestRealNumber(t *testing.T) {
	toks, _ := Tokenize("3.14")
	if len(toks) != 1 || toks[0].Lexeme != "3.14" {
		t.Fatalf("got %v, want single NUMBER(3.14)", toks)
	}
}

func TestStringLiteralEscapedQuote(t *testing.T) {
	toks, diags := Tokenize("'it''s'")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(toks) != 1 || toks[0].Kind != token.STRING_LITERAL {
		t.Fatalf("got %v", toks)
	}
	if toks[0].Lexeme != "'it''s'" {
		t.Errorf("lexeme = %q", toks[0].Lexeme)
	}
}

func TestUnterminatedStringStopsLexing(t *testing.T) {
	toks, diags := Tokenize("x := 'abc\nselesai")
	if len(diags) != 1 || diags[0].Severity.String() != "Warning" {
		t.Fatalf("diags = %v", diags)
	}
	for _, tok := range toks {
		if tok.Lexeme == "selesai" {
			t.Fatalf("lexing should have stopped before 'selesai': %v", toks)
		}
	}
}

func TestUnterminatedBraceCommentStopsLexing(t *testing.T) {
	toks, diags := Tokenize("program p; { comment never closes\nmulai selesai.")
	if len(diags) != 1 {
		t.Fatalf("diags = %v", diags)
	}
	for _, tok := range toks {
		if tok.Lexeme == "mulai" {
			t.Fatalf("lexing should have stopped inside the comment: %v", toks)
		}
	}
}

func TestStarCommentSkipped(t *testing.T) {
	toks, diags := Tokenize("x (* a comment *) y")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(toks) != 2 || toks[0].Lexeme != "x" || toks[1].Lexeme != "y" {
		t.Fatalf("got %v", toks)
	}
}

func TestUnknownGlyphContinues(t *testing.T) {
	toks, diags := Tokenize("x @ y")
	if len(diags) != 1 {
		t.Fatalf("diags = %v", diags)
	}
	if len(toks) != 3 || toks[1].Kind != token.UNKNOWN {
		t.Fatalf("got %v", toks)
	}
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	toks, _ := Tokenize("program p;\nmulai selesai.")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("first token pos = %v", toks[0].Pos)
	}
	var mulai token.Token
	for _, tok := range toks {
		if tok.Lexeme == "mulai" {
			mulai = tok
		}
	}
	if mulai.Pos.Line != 2 || mulai.Pos.Column != 1 {
		t.Errorf("mulai pos = %v, want line 2 column 1", mulai.Pos)
	}
}

func TestLongestMatchOperators(t *testing.T) {
	toks, _ := Tokenize(":= <= >= <> ..")
	want := []token.Kind{
		token.ASSIGN_OPERATOR, token.RELATIONAL_OPERATOR, token.RELATIONAL_OPERATOR,
		token.RELATIONAL_OPERATOR, token.RANGE_OPERATOR,
	}
	for i, tok := range toks {
		if tok.Kind != want[i] {
			t.Errorf("token %d (%q): got %s, want %s", i, tok.Lexeme, tok.Kind, want[i])
		}
	}
}
