package parser

import (
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// parseExpression parses `<simple-expression> [<rel-op> <simple-expression>]`.
func (p *Parser) parseExpression() (*parsetree.Node, error) {
	left, err := p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}
	if relOp, ok := p.peekRelOp(); ok {
		opNode := parsetree.New(parsetree.KindRelOp, parsetree.Leaf(p.advance()))
		right, err := p.parseSimpleExpression()
		if err != nil {
			return nil, err
		}
		_ = relOp
		return parsetree.New(parsetree.KindExpression, left, opNode, right), nil
	}
	return parsetree.New(parsetree.KindExpression, left), nil
}

func (p *Parser) peekRelOp() (string, bool) {
	tok := p.current()
	if tok.Kind != token.RELATIONAL_OPERATOR {
		return "", false
	}
	return tok.Lexeme, true
}

// parseSimpleExpression parses `[ '+'|'-' ] <term> {<add-op> <term>}`.
func (p *Parser) parseSimpleExpression() (*parsetree.Node, error) {
	node := parsetree.New(parsetree.KindSimpleExpression)
	if p.isUnarySign() {
		node.AddChild(parsetree.Leaf(p.advance()))
	}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	node.AddChild(term)
	for p.isAddOp() {
		opTok := p.advance()
		opNode := parsetree.New(parsetree.KindAddOp, parsetree.Leaf(opTok))
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node.AddChild(opNode)
		node.AddChild(term)
	}
	return node, nil
}

func (p *Parser) isUnarySign() bool {
	tok := p.current()
	return tok.Kind == token.ARITHMETIC_OPERATOR && (tok.Lexeme == "+" || tok.Lexeme == "-")
}

func (p *Parser) isAddOp() bool {
	tok := p.current()
	if tok.Kind == token.ARITHMETIC_OPERATOR && (tok.Lexeme == "+" || tok.Lexeme == "-") {
		return true
	}
	return tok.Kind == token.LOGICAL_OPERATOR && lowerEqual(tok.Lexeme, "atau")
}

func (p *Parser) isMulOp() bool {
	tok := p.current()
	if tok.Kind == token.ARITHMETIC_OPERATOR && (tok.Lexeme == "*" || tok.Lexeme == "/") {
		return true
	}
	if tok.Kind == token.ARITHMETIC_OPERATOR && (lowerEqual(tok.Lexeme, "bagi") || lowerEqual(tok.Lexeme, "mod")) {
		return true
	}
	if tok.Kind == token.LOGICAL_OPERATOR && lowerEqual(tok.Lexeme, "dan") {
		return true
	}
	return false
}

// parseTerm parses `<factor> {<mul-op> <factor>}`.
func (p *Parser) parseTerm() (*parsetree.Node, error) {
	node := parsetree.New(parsetree.KindTerm)
	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	node.AddChild(factor)
	for p.isMulOp() {
		opTok := p.advance()
		opNode := parsetree.New(parsetree.KindMulOp, parsetree.Leaf(opTok))
		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node.AddChild(opNode)
		node.AddChild(factor)
	}
	return node, nil
}

// parseFactor parses `NUMBER | CHAR_LIT | STRING_LIT | IDENT | '(' <expression> ')'
// | 'tidak' <factor> | <proc-call>`.
//
// An IDENT is disambiguated by a single token of lookahead: followed by
// '(' it is a <proc-call> (function call); otherwise it is a bare
// identifier reference, left for the semantic analyzer to classify as a
// variable or constant.
func (p *Parser) parseFactor() (*parsetree.Node, error) {
	tok := p.current()
	switch {
	case tok.Kind == token.NUMBER, tok.Kind == token.CHAR_LITERAL, tok.Kind == token.STRING_LITERAL:
		p.advance()
		return parsetree.New(parsetree.KindFactor, parsetree.Leaf(tok)), nil

	case tok.Kind == token.LPARENTHESIS:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(token.RPARENTHESIS)
		if err != nil {
			return nil, err
		}
		return parsetree.New(parsetree.KindFactor, parsetree.Leaf(tok), expr, parsetree.Leaf(rp)), nil

	case tok.Kind == token.LOGICAL_OPERATOR && lowerEqual(tok.Lexeme, "tidak"):
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return parsetree.New(parsetree.KindFactor, parsetree.Leaf(tok), operand), nil

	case tok.Kind == token.IDENTIFIER:
		if p.lookahead(1).Kind == token.LPARENTHESIS {
			call, err := p.parseProcedureCall()
			if err != nil {
				return nil, err
			}
			return parsetree.New(parsetree.KindFactor, call), nil
		}
		p.advance()
		return parsetree.New(parsetree.KindFactor, parsetree.Leaf(tok)), nil

	default:
		return nil, errorf(tok.Pos, "unexpected token %q in expression", tok.Lexeme)
	}
}
