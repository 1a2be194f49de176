package parser

import (
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

func (p *Parser) parseCompoundStatement() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("mulai")
	if err != nil {
		return nil, err
	}
	list, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	end, err := p.expectKeyword("selesai")
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindCompoundStatement, parsetree.Leaf(kw), list, parsetree.Leaf(end)), nil
}

// statementListTerminators are the keywords that legally end a
// <statement-list> without a trailing statement: an empty list is allowed
// immediately before 'selesai' or 'sampai'.
func (p *Parser) atStatementListEnd() bool {
	return p.checkKeyword("selesai") || p.checkKeyword("sampai")
}

func (p *Parser) parseStatementList() (*parsetree.Node, error) {
	node := parsetree.New(parsetree.KindStatementList)
	if p.atStatementListEnd() {
		return node, nil
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.AddChild(stmt)
	for p.check(token.SEMICOLON) {
		semi := p.advance()
		node.AddChild(parsetree.Leaf(semi))
		if p.atStatementListEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.AddChild(stmt)
	}
	return node, nil
}

func (p *Parser) parseStatement() (*parsetree.Node, error) {
	switch {
	case p.checkKeyword("ulangi"):
		s, err := p.parseRepeatStatement()
		return wrap(s, err)
	case p.checkKeyword("mulai"):
		s, err := p.parseCompoundStatement()
		return wrap(s, err)
	case p.checkKeyword("jika"):
		s, err := p.parseIfStatement()
		return wrap(s, err)
	case p.checkKeyword("selama"):
		s, err := p.parseWhileStatement()
		return wrap(s, err)
	case p.checkKeyword("untuk"):
		s, err := p.parseForStatement()
		return wrap(s, err)
	case p.checkKeyword("kasus"):
		s, err := p.parseCaseStatement()
		return wrap(s, err)
	case p.current().Kind == token.IDENTIFIER:
		return p.parseIdentifierLedStatement()
	case p.atStatementListEnd() || p.check(token.SEMICOLON):
		// empty statement (two consecutive semicolons, or a lone ';').
		return parsetree.New(parsetree.KindStatement), nil
	default:
		tok := p.current()
		return nil, errorf(tok.Pos, "unexpected token %q in statement", tok.Lexeme)
	}
}

func wrap(n *parsetree.Node, err error) (*parsetree.Node, error) {
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindStatement, n), nil
}

// parseIdentifierLedStatement is ambiguity point #2: an IDENTIFIER can
// start an assignment or a procedure call. Save the cursor, attempt a
// <variable>; on ASSIGN_OPERATOR commit to an assignment, otherwise rewind
// and parse a procedure call. A probe failure also rewinds and parses a
// procedure call.
func (p *Parser) parseIdentifierLedStatement() (*parsetree.Node, error) {
	mark := p.save()
	variable, err := p.parseVariable()
	if err == nil && p.check(token.ASSIGN_OPERATOR) {
		assign, err := p.finishAssignment(variable)
		if err != nil {
			return nil, err
		}
		return parsetree.New(parsetree.KindStatement, assign), nil
	}
	p.restore(mark)

	call, err := p.parseProcedureCall()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindStatement, call), nil
}

func (p *Parser) finishAssignment(target *parsetree.Node) (*parsetree.Node, error) {
	assignTok, err := p.expect(token.ASSIGN_OPERATOR)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindAssignment, target, parsetree.Leaf(assignTok), value), nil
}

// parseVariable parses `IDENT {'.' IDENT | '[' <expression> {',' <expression>} ']'}`.
func (p *Parser) parseVariable() (*parsetree.Node, error) {
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindVariable, parsetree.Leaf(name))
	for {
		switch {
		case p.check(token.DOT):
			dot := p.advance()
			field, err := p.expect(token.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			node.AddChild(parsetree.Leaf(dot))
			node.AddChild(parsetree.Leaf(field))
		case p.check(token.LBRACKET):
			lb := p.advance()
			node.AddChild(parsetree.Leaf(lb))
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			node.AddChild(expr)
			for p.check(token.COMMA) {
				comma := p.advance()
				node.AddChild(parsetree.Leaf(comma))
				expr, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				node.AddChild(expr)
			}
			rb, err := p.expect(token.RBRACKET)
			if err != nil {
				return nil, err
			}
			node.AddChild(parsetree.Leaf(rb))
		default:
			return node, nil
		}
	}
}

func (p *Parser) parseIfStatement() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("jika")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	maka, err := p.expectKeyword("maka")
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindIf, parsetree.Leaf(kw), cond, parsetree.Leaf(maka), then)
	if p.checkKeyword("selainitu") {
		elseKw := p.advance()
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.AddChild(parsetree.Leaf(elseKw))
		node.AddChild(elseStmt)
	}
	return node, nil
}

func (p *Parser) parseWhileStatement() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("selama")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	do, err := p.expectKeyword("lakukan")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindWhile, parsetree.Leaf(kw), cond, parsetree.Leaf(do), body), nil
}

func (p *Parser) parseForStatement() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("untuk")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	assign, err := p.expect(token.ASSIGN_OPERATOR)
	if err != nil {
		return nil, err
	}
	from, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var dir token.Token
	switch {
	case p.checkKeyword("ke"):
		dir = p.advance()
	case p.checkKeyword("turunke"):
		dir = p.advance()
	default:
		tok := p.current()
		return nil, errorf(tok.Pos, "expected 'ke' or 'turunke', got %q", tok.Lexeme)
	}
	to, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	do, err := p.expectKeyword("lakukan")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindFor,
		parsetree.Leaf(kw), parsetree.Leaf(name), parsetree.Leaf(assign), from,
		parsetree.Leaf(dir), to, parsetree.Leaf(do), body), nil
}

func (p *Parser) parseRepeatStatement() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("ulangi")
	if err != nil {
		return nil, err
	}
	list, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	until, err := p.expectKeyword("sampai")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindRepeat, parsetree.Leaf(kw), list, parsetree.Leaf(until), cond), nil
}

func (p *Parser) parseCaseStatement() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("kasus")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	dari, err := p.expectKeyword("dari")
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindCase, parsetree.Leaf(kw), expr, parsetree.Leaf(dari))
	for !p.checkKeyword("selesai") {
		elem, err := p.parseCaseElement()
		if err != nil {
			return nil, err
		}
		node.AddChild(elem)
	}
	end, err := p.expectKeyword("selesai")
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(end))
	return node, nil
}

func (p *Parser) parseCaseElement() (*parsetree.Node, error) {
	list := parsetree.New(parsetree.KindConstantList)
	val, err := p.parseConstValue()
	if err != nil {
		return nil, err
	}
	list.AddChild(val)
	for p.check(token.COMMA) {
		comma := p.advance()
		list.AddChild(parsetree.Leaf(comma))
		val, err := p.parseConstValue()
		if err != nil {
			return nil, err
		}
		list.AddChild(val)
	}
	colon, err := p.expect(token.COLON)
	if err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindCaseElement, list, parsetree.Leaf(colon), stmt), nil
}

// parseProcedureCall parses `(IDENT|'writeln'|'readln'|'write'|'read')
// ['(' <expression> {',' <expression>} ')']`.
func (p *Parser) parseProcedureCall() (*parsetree.Node, error) {
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindProcedureCall, parsetree.Leaf(name))
	if p.check(token.LPARENTHESIS) {
		args, err := p.parseParameterList()
		if err != nil {
			return nil, err
		}
		node.AddChild(args)
	}
	return node, nil
}

func (p *Parser) parseParameterList() (*parsetree.Node, error) {
	lp, err := p.expect(token.LPARENTHESIS)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindParameterList, parsetree.Leaf(lp))
	if !p.check(token.RPARENTHESIS) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.AddChild(expr)
		for p.check(token.COMMA) {
			comma := p.advance()
			node.AddChild(parsetree.Leaf(comma))
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			node.AddChild(expr)
		}
	}
	rp, err := p.expect(token.RPARENTHESIS)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(rp))
	return node, nil
}
