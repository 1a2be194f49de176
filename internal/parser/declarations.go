package parser

import (
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

func (p *Parser) parseConstDeclaration() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("konstanta")
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindConstDecl, parsetree.Leaf(kw))
	for p.check(token.IDENTIFIER) {
		item, err := p.parseConstItem()
		if err != nil {
			return nil, err
		}
		node.AddChild(item)
	}
	return node, nil
}

func (p *Parser) parseConstItem() (*parsetree.Node, error) {
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	eq, err := p.expectRelOp("=")
	if err != nil {
		return nil, err
	}
	val, err := p.parseConstValue()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindConstItem, parsetree.Leaf(name), parsetree.Leaf(eq), val, parsetree.Leaf(semi)), nil
}

func (p *Parser) parseConstValue() (*parsetree.Node, error) {
	tok := p.current()
	switch tok.Kind {
	case token.NUMBER, token.CHAR_LITERAL, token.STRING_LITERAL, token.IDENTIFIER:
		p.advance()
		return parsetree.New(parsetree.KindConstValue, parsetree.Leaf(tok)), nil
	default:
		return nil, errorf(tok.Pos, "expected a constant value, got %q", tok.Lexeme)
	}
}

func (p *Parser) parseTypeDeclaration() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("tipe")
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindTypeDecl, parsetree.Leaf(kw))
	for p.check(token.IDENTIFIER) {
		item, err := p.parseTypeItem()
		if err != nil {
			return nil, err
		}
		node.AddChild(item)
	}
	return node, nil
}

func (p *Parser) parseTypeItem() (*parsetree.Node, error) {
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	eq, err := p.expectRelOp("=")
	if err != nil {
		return nil, err
	}
	def, err := p.parseTypeDefinition()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindTypeItem, parsetree.Leaf(name), parsetree.Leaf(eq), def, parsetree.Leaf(semi)), nil
}

// parseTypeDefinition is ambiguity point #1: a pure two-token lookahead,
// no backtracking. A NUMBER, or an IDENTIFIER followed by RANGE_OPERATOR
// (or two consecutive DOTs), starts a <range>; anything else is a <type>.
func (p *Parser) parseTypeDefinition() (*parsetree.Node, error) {
	tok := p.current()
	startsRange := tok.Kind == token.NUMBER ||
		(tok.Kind == token.IDENTIFIER && (p.lookahead(1).Kind == token.RANGE_OPERATOR ||
			(p.lookahead(1).Kind == token.DOT && p.lookahead(2).Kind == token.DOT)))

	if startsRange {
		r, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		return parsetree.New(parsetree.KindTypeDefinition, r), nil
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindTypeDefinition, t), nil
}

func (p *Parser) parseType() (*parsetree.Node, error) {
	tok := p.current()
	switch {
	case p.checkKeyword("integer"), p.checkKeyword("real"), p.checkKeyword("boolean"),
		p.checkKeyword("char"), p.checkKeyword("string"):
		p.advance()
		return parsetree.New(parsetree.KindType, parsetree.Leaf(tok)), nil
	case p.checkKeyword("larik"):
		arr, err := p.parseArrayType()
		if err != nil {
			return nil, err
		}
		return parsetree.New(parsetree.KindType, arr), nil
	case p.checkKeyword("rekaman"):
		rec, err := p.parseRecordType()
		if err != nil {
			return nil, err
		}
		return parsetree.New(parsetree.KindType, rec), nil
	case tok.Kind == token.IDENTIFIER:
		p.advance()
		return parsetree.New(parsetree.KindType, parsetree.Leaf(tok)), nil
	default:
		return nil, errorf(tok.Pos, "expected a type, got %q", tok.Lexeme)
	}
}

func (p *Parser) parseArrayType() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("larik")
	if err != nil {
		return nil, err
	}
	lb, err := p.expect(token.LBRACKET)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindArrayType, parsetree.Leaf(kw), parsetree.Leaf(lb))
	spec, err := p.parseIndexSpecification()
	if err != nil {
		return nil, err
	}
	node.AddChild(spec)
	for p.check(token.COMMA) {
		comma := p.advance()
		node.AddChild(parsetree.Leaf(comma))
		spec, err := p.parseIndexSpecification()
		if err != nil {
			return nil, err
		}
		node.AddChild(spec)
	}
	rb, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(rb))
	dari, err := p.expectKeyword("dari")
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(dari))
	elemType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	node.AddChild(elemType)
	return node, nil
}

// parseIndexSpecification is ambiguity point #3: genuine backtracking.
// Try <range> first; on failure, rewind and parse a <simple-expression>.
func (p *Parser) parseIndexSpecification() (*parsetree.Node, error) {
	mark := p.save()
	if r, err := p.parseRange(); err == nil {
		return parsetree.New(parsetree.KindIndexSpecification, r), nil
	}
	p.restore(mark)
	expr, err := p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindIndexSpecification, expr), nil
}

// parseRange parses `<simple-expression> ('..'|'.' '.') <simple-expression>`.
// A lone DOT followed by a NUMBER is tolerated as a historical fallback for
// sources that never emit a combined RANGE_OPERATOR token.
func (p *Parser) parseRange() (*parsetree.Node, error) {
	low, err := p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindRange, low)

	switch {
	case p.check(token.RANGE_OPERATOR):
		node.AddChild(parsetree.Leaf(p.advance()))
	case p.check(token.DOT) && p.lookahead(1).Kind == token.DOT:
		node.AddChild(parsetree.Leaf(p.advance()))
		node.AddChild(parsetree.Leaf(p.advance()))
	case p.check(token.DOT) && p.lookahead(1).Kind == token.NUMBER:
		node.AddChild(parsetree.Leaf(p.advance()))
	default:
		tok := p.current()
		return nil, errorf(tok.Pos, "expected range operator '..', got %q", tok.Lexeme)
	}

	high, err := p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}
	node.AddChild(high)
	return node, nil
}

func (p *Parser) parseRecordType() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("rekaman")
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindRecordType, parsetree.Leaf(kw))
	for p.check(token.IDENTIFIER) {
		item, err := p.parseVarItem()
		if err != nil {
			return nil, err
		}
		node.AddChild(item)
	}
	end, err := p.expectKeyword("selesai")
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(end))
	return node, nil
}

func (p *Parser) parseVarDeclaration() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("variabel")
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindVarDecl, parsetree.Leaf(kw))
	for p.check(token.IDENTIFIER) {
		item, err := p.parseVarItem()
		if err != nil {
			return nil, err
		}
		node.AddChild(item)
	}
	return node, nil
}

func (p *Parser) parseVarItem() (*parsetree.Node, error) {
	idents, err := p.parseIdentifierList()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(token.COLON)
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindVarItem, idents, parsetree.Leaf(colon), typ, parsetree.Leaf(semi)), nil
}

func (p *Parser) parseIdentifierList() (*parsetree.Node, error) {
	first, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindIdentifierList, parsetree.Leaf(first))
	for p.check(token.COMMA) {
		comma := p.advance()
		node.AddChild(parsetree.Leaf(comma))
		ident, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		node.AddChild(parsetree.Leaf(ident))
	}
	return node, nil
}

func (p *Parser) parseSubprogramDeclaration() (*parsetree.Node, error) {
	var child *parsetree.Node
	var err error
	switch {
	case p.checkKeyword("prosedur"):
		child, err = p.parseProcedureDeclaration()
	case p.checkKeyword("fungsi"):
		child, err = p.parseFunctionDeclaration()
	default:
		tok := p.current()
		return nil, errorf(tok.Pos, "expected 'prosedur' or 'fungsi', got %q", tok.Lexeme)
	}
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindSubprogramDecl, child), nil
}

func (p *Parser) parseProcedureDeclaration() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("prosedur")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindProcedureDecl, parsetree.Leaf(kw), parsetree.Leaf(name))
	if p.check(token.LPARENTHESIS) {
		params, err := p.parseFormalParameterList()
		if err != nil {
			return nil, err
		}
		node.AddChild(params)
	}
	semi1, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(semi1))
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.AddChild(block)
	semi2, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(semi2))
	return node, nil
}

func (p *Parser) parseFunctionDeclaration() (*parsetree.Node, error) {
	kw, err := p.expectKeyword("fungsi")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindFunctionDecl, parsetree.Leaf(kw), parsetree.Leaf(name))
	if p.check(token.LPARENTHESIS) {
		params, err := p.parseFormalParameterList()
		if err != nil {
			return nil, err
		}
		node.AddChild(params)
	}
	colon, err := p.expect(token.COLON)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(colon))
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	node.AddChild(retType)
	semi1, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(semi1))
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.AddChild(block)
	semi2, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(semi2))
	return node, nil
}

func (p *Parser) parseFormalParameterList() (*parsetree.Node, error) {
	lp, err := p.expect(token.LPARENTHESIS)
	if err != nil {
		return nil, err
	}
	node := parsetree.New(parsetree.KindFormalParameterList, parsetree.Leaf(lp))
	group, err := p.parseParameterGroup()
	if err != nil {
		return nil, err
	}
	node.AddChild(group)
	for p.check(token.SEMICOLON) {
		semi := p.advance()
		node.AddChild(parsetree.Leaf(semi))
		group, err := p.parseParameterGroup()
		if err != nil {
			return nil, err
		}
		node.AddChild(group)
	}
	rp, err := p.expect(token.RPARENTHESIS)
	if err != nil {
		return nil, err
	}
	node.AddChild(parsetree.Leaf(rp))
	return node, nil
}

func (p *Parser) parseParameterGroup() (*parsetree.Node, error) {
	idents, err := p.parseIdentifierList()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(token.COLON)
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindParameterGroup, idents, parsetree.Leaf(colon), typ), nil
}

func (p *Parser) parseBlock() (*parsetree.Node, error) {
	decls, err := p.parseDeclarationPart()
	if err != nil {
		return nil, err
	}
	compound, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	return parsetree.New(parsetree.KindBlock, decls, compound), nil
}
