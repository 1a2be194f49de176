// Package parser implements a recursive-descent parser for the grammar in
// SPEC_FULL.md §4.2. Lookahead is bounded (at most two tokens). Of the
// three documented ambiguity points, range-vs-type is settled by lookahead
// alone; the other two use an explicit saved-cursor discipline (save the
// token index, try a production, restore the index on failure) rather
// than exceptions or panics for control flow.
package parser

import (
	"github.com/bahasapas-lang/bahasapasc/internal/diagnostics"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// Parser walks a fixed token slice produced by the lexer.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse runs the parser over tokens for the <program> start symbol. On
// success it returns the parse tree and a nil diagnostic slice; on the
// first unrecoverable grammar mismatch it returns a nil tree and exactly
// one SevSyntax diagnostic (the grammar defines no error recovery).
func Parse(tokens []token.Token) (*parsetree.Node, []diagnostics.Diagnostic) {
	p := &Parser{tokens: tokens}
	tree, err := p.parseProgram()
	if err != nil {
		return nil, []diagnostics.Diagnostic{toDiagnostic(err)}
	}
	if !p.atEnd() {
		tok := p.current()
		return nil, []diagnostics.Diagnostic{
			diagnostics.New(diagnostics.SevSyntax, tok.Pos, "unexpected trailing token %s", tok.Lexeme),
		}
	}
	return tree, nil
}

func toDiagnostic(err error) diagnostics.Diagnostic {
	if pe, ok := err.(*parseError); ok {
		return diagnostics.New(diagnostics.SevSyntax, pe.Pos, "%s", pe.Msg)
	}
	return diagnostics.New(diagnostics.SevSyntax, token.Position{}, "%s", err.Error())
}

// --- primitives -------------------------------------------------------

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) current() token.Token {
	if p.atEnd() {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return token.Token{Kind: token.EOF, Lexeme: "", Pos: last.Pos}
		}
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

// lookahead returns the token k positions ahead of the cursor (k=0 is
// current()); bounded to the 2 tokens the grammar actually needs.
func (p *Parser) lookahead(k int) token.Token {
	idx := p.pos + k
	if idx >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) save() int { return p.pos }

func (p *Parser) restore(mark int) { p.pos = mark }

func (p *Parser) check(kind token.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if !p.check(kind) {
		tok := p.current()
		return tok, errorf(tok.Pos, "expected %s, got %s %q", kind, tok.Kind, tok.Lexeme)
	}
	return p.advance(), nil
}

func lowerEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// checkKeyword reports whether the current token is a KEYWORD or an
// IDENTIFIER spelled word, case-insensitive.
func (p *Parser) checkKeyword(word string) bool {
	tok := p.current()
	if tok.Kind != token.KEYWORD && tok.Kind != token.IDENTIFIER {
		return false
	}
	return lowerEqual(tok.Lexeme, word)
}

func (p *Parser) expectKeyword(word string) (token.Token, error) {
	if !p.checkKeyword(word) {
		tok := p.current()
		return tok, errorf(tok.Pos, "expected keyword %q, got %q", word, tok.Lexeme)
	}
	return p.advance(), nil
}

// expectRelOp checks both the RELATIONAL_OPERATOR kind and the exact
// lexeme, since several relational operators share the kind.
func (p *Parser) expectRelOp(symbol string) (token.Token, error) {
	tok := p.current()
	if tok.Kind != token.RELATIONAL_OPERATOR || tok.Lexeme != symbol {
		return tok, errorf(tok.Pos, "expected relational operator %q, got %q", symbol, tok.Lexeme)
	}
	return p.advance(), nil
}

// --- <program> ----------------------------------------------------------

func (p *Parser) parseProgram() (*parsetree.Node, error) {
	header, err := p.parseProgramHeader()
	if err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationPart()
	if err != nil {
		return nil, err
	}
	compound, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	dot, err := p.expect(token.DOT)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindProgram, header, decls, compound, parsetree.Leaf(dot))
	return node, nil
}

func (p *Parser) parseProgramHeader() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("program")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindProgramHeader, parsetree.Leaf(kw), parsetree.Leaf(name), parsetree.Leaf(semi)), nil
}

// parseDeclarationPart enforces the strict grammar order: all const-decls,
// then all type-decls, then all var-decls, then all subprogram-decls.
func (p *Parser) parseDeclarationPart() (*parsetree.Node, error) {
	node := parsetree.New(parsetree.KindDeclarationPart)

	for p.checkKeyword("konstanta") {
		child, err := p.parseConstDeclaration()
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	for p.checkKeyword("tipe") {
		child, err := p.parseTypeDeclaration()
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	for p.checkKeyword("variabel") {
		child, err := p.parseVarDeclaration()
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	for p.checkKeyword("prosedur") || p.checkKeyword("fungsi") {
		child, err := p.parseSubprogramDeclaration()
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}
