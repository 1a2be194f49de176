package semantic

import (
	"strconv"
	"strings"

	"github.com/bahasapas-lang/bahasapasc/internal/ast"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

func isLiteralKind(k token.Kind) bool {
	return k == token.NUMBER || k == token.CHAR_LITERAL || k == token.STRING_LITERAL
}

// analyzeExpression decorates a <expression> node: <simple-expr> [<rel-op>
// <simple-expr>]. A relational comparison always yields BOOLEAN.
func (a *Analyzer) analyzeExpression(node *parsetree.Node) ast.Expression {
	left := a.analyzeSimpleExpression(node.Children[0])
	if len(node.Children) == 1 {
		return left
	}
	opTok := node.Children[1].Children[0].Token
	right := a.analyzeSimpleExpression(node.Children[2])
	return &ast.BinaryExpression{
		Position: opTok.Pos,
		Op:       opTok.Lexeme,
		Left:     left,
		Right:    right,
		ValType:  symboltable.Boolean,
	}
}

// analyzeSimpleExpression decorates `['+'|'-'] <term> {<add-op> <term>}`.
func (a *Analyzer) analyzeSimpleExpression(node *parsetree.Node) ast.Expression {
	idx := 0
	var sign *token.Token
	if node.Children[idx].IsLeaf() {
		sign = node.Children[idx].Token
		idx++
	}
	result := a.analyzeTerm(node.Children[idx])
	idx++
	if sign != nil {
		result = &ast.UnaryExpression{Position: sign.Pos, Op: sign.Lexeme, Operand: result, ValType: result.Type()}
	}
	for idx < len(node.Children) {
		opTok := node.Children[idx].Children[0].Token
		idx++
		right := a.analyzeTerm(node.Children[idx])
		idx++
		result = &ast.BinaryExpression{
			Position: opTok.Pos,
			Op:       opTok.Lexeme,
			Left:     result,
			Right:    right,
			ValType:  a.combineArithType(opTok, result.Type(), right.Type()),
		}
	}
	return result
}

func (a *Analyzer) analyzeTerm(node *parsetree.Node) ast.Expression {
	result := a.analyzeFactor(node.Children[0])
	idx := 1
	for idx < len(node.Children) {
		opTok := node.Children[idx].Children[0].Token
		idx++
		right := a.analyzeFactor(node.Children[idx])
		idx++
		result = &ast.BinaryExpression{
			Position: opTok.Pos,
			Op:       opTok.Lexeme,
			Left:     result,
			Right:    right,
			ValType:  a.combineArithType(opTok, result.Type(), right.Type()),
		}
	}
	return result
}

// combineArithType reports REAL when either operand is REAL (numeric
// promotion, applying to '+' '-' '*' '/' 'bagi' 'mod' alike — this
// language's '/' is not a forced-REAL true division), BOOLEAN for the
// logical operators 'dan'/'atau', and VOID for any non-numeric pairing
// (a type mismatch the caller reports with the surrounding statement's
// context: assignment, call, etc.).
func (a *Analyzer) combineArithType(opTok *token.Token, left, right symboltable.BaseType) symboltable.BaseType {
	lower := strings.ToLower(opTok.Lexeme)
	if lower == "dan" || lower == "atau" {
		return symboltable.Boolean
	}
	if left == symboltable.Real || right == symboltable.Real {
		return symboltable.Real
	}
	if left == symboltable.Integer && right == symboltable.Integer {
		return symboltable.Integer
	}
	return symboltable.Void
}

func (a *Analyzer) analyzeFactor(node *parsetree.Node) ast.Expression {
	first := node.Children[0]

	if !first.IsLeaf() && first.Kind == parsetree.KindProcedureCall {
		return a.analyzeFunctionCallFactor(first)
	}

	if first.IsLeaf() {
		if isLiteralKind(first.Token.Kind) {
			return a.literalFromToken(first.Token)
		}
		if first.Token.Kind == token.LOGICAL_OPERATOR && strings.EqualFold(first.Token.Lexeme, "tidak") {
			operand := a.analyzeFactor(node.Children[1])
			return &ast.NotExpression{Position: first.Token.Pos, Operand: operand}
		}
		if first.Token.Kind == token.LPARENTHESIS {
			return a.analyzeExpression(node.Children[1])
		}
		// Bare identifier: constant, variable or parameterless function reference.
		return a.analyzeIdentifierFactor(first.Token)
	}

	return a.analyzeExpression(first)
}

func (a *Analyzer) analyzeFunctionCallFactor(callNode *parsetree.Node) ast.Expression {
	nameTok := callNode.Children[0].Token
	var args []ast.Expression
	if len(callNode.Children) > 1 {
		args = a.analyzeParameterList(callNode.Children[1])
	}

	idx := a.table.FindIdentifier(nameTok.Lexeme)
	if idx < 0 {
		a.errorf(nameTok.Pos, "undeclared function %q", nameTok.Lexeme)
		return &ast.FunctionCall{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: -1, Args: args, ValType: symboltable.Void}
	}
	entry := a.table.Entry(idx)
	if entry.Obj != symboltable.ObjFunction && entry.Obj != symboltable.ObjProcedure {
		a.errorf(nameTok.Pos, "%q is not callable", nameTok.Lexeme)
	} else if !isBuiltinIO(nameTok.Lexeme) {
		a.validateParameters(nameTok, idx, args)
	}
	return &ast.FunctionCall{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: idx, Args: args, ValType: entry.Type}
}

func (a *Analyzer) analyzeParameterList(node *parsetree.Node) []ast.Expression {
	var args []ast.Expression
	for _, child := range node.Children {
		if child.IsLeaf() {
			continue
		}
		args = append(args, a.analyzeExpression(child))
	}
	return args
}

func (a *Analyzer) literalFromToken(tok *token.Token) ast.Expression {
	switch tok.Kind {
	case token.NUMBER:
		if strings.Contains(tok.Lexeme, ".") {
			f, _ := strconv.ParseFloat(tok.Lexeme, 64)
			return &ast.NumberLiteral{Position: tok.Pos, Value: f, ValType: symboltable.Real}
		}
		n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.NumberLiteral{Position: tok.Pos, Value: n, ValType: symboltable.Integer}
	case token.STRING_LITERAL:
		unquoted := unquoteStringLiteral(tok.Lexeme)
		if len(unquoted) == 1 {
			return &ast.CharLiteral{Position: tok.Pos, Value: unquoted[0]}
		}
		return &ast.StringLiteral{Position: tok.Pos, Value: unquoted}
	case token.CHAR_LITERAL:
		unquoted := unquoteStringLiteral(tok.Lexeme)
		var b byte
		if len(unquoted) > 0 {
			b = unquoted[0]
		}
		return &ast.CharLiteral{Position: tok.Pos, Value: b}
	default:
		return &ast.NumberLiteral{Position: tok.Pos, Value: int64(0), ValType: symboltable.Integer}
	}
}

func unquoteStringLiteral(lexeme string) string {
	if len(lexeme) >= 2 && lexeme[0] == '\'' && lexeme[len(lexeme)-1] == '\'' {
		inner := lexeme[1 : len(lexeme)-1]
		return strings.ReplaceAll(inner, "''", "'")
	}
	return lexeme
}

func (a *Analyzer) analyzeIdentifierFactor(tok *token.Token) ast.Expression {
	if strings.EqualFold(tok.Lexeme, "benar") {
		return &ast.BooleanLiteral{Position: tok.Pos, Value: true}
	}
	if strings.EqualFold(tok.Lexeme, "salah") {
		return &ast.BooleanLiteral{Position: tok.Pos, Value: false}
	}

	idx := a.table.FindIdentifier(tok.Lexeme)
	if idx < 0 {
		a.errorf(tok.Pos, "undeclared identifier %q", tok.Lexeme)
		return &ast.VariableRef{Position: tok.Pos, Name: tok.Lexeme, TabIndex: -1, ValType: symboltable.Void, ArrayRef: -1}
	}
	entry := a.table.Entry(idx)
	switch entry.Obj {
	case symboltable.ObjConstant:
		return &ast.ConstantRef{Position: tok.Pos, Name: tok.Lexeme, Value: entry.ConstValue, ValType: entry.Type}
	case symboltable.ObjFunction:
		if !isBuiltinIO(tok.Lexeme) {
			a.validateParameters(tok, idx, nil)
		}
		return &ast.FunctionCall{Position: tok.Pos, Name: tok.Lexeme, TabIndex: idx, ValType: entry.Type}
	default:
		return &ast.VariableRef{Position: tok.Pos, Name: tok.Lexeme, TabIndex: idx, ValType: entry.Type, ArrayRef: entry.Ref}
	}
}

func isBuiltinIO(name string) bool {
	lower := strings.ToLower(name)
	return lower == "writeln" || lower == "readln" || lower == "write" || lower == "read"
}

// foldConstant recursively evaluates a constant expression tree down to a
// literal Go value, recursing through nested binary/unary/not expressions
// and named-constant references rather than only accepting a single bare
// literal, per the genuine-recursion decision in the folding design.
func (a *Analyzer) foldConstant(expr ast.Expression) (any, bool) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return e.Value, true
	case *ast.StringLiteral:
		return e.Value, true
	case *ast.CharLiteral:
		return e.Value, true
	case *ast.BooleanLiteral:
		return e.Value, true
	case *ast.ConstantRef:
		return e.Value, true
	case *ast.UnaryExpression:
		v, ok := a.foldConstant(e.Operand)
		if !ok {
			return nil, false
		}
		return applyUnary(e.Op, v)
	case *ast.NotExpression:
		v, ok := a.foldConstant(e.Operand)
		if !ok {
			return nil, false
		}
		b, ok := v.(bool)
		if !ok {
			return nil, false
		}
		return !b, true
	case *ast.BinaryExpression:
		l, ok := a.foldConstant(e.Left)
		if !ok {
			return nil, false
		}
		r, ok := a.foldConstant(e.Right)
		if !ok {
			return nil, false
		}
		return applyBinary(e.Op, l, r)
	default:
		return nil, false
	}
}

func applyUnary(op string, v any) (any, bool) {
	switch n := v.(type) {
	case int64:
		if op == "-" {
			return -n, true
		}
		return n, true
	case float64:
		if op == "-" {
			return -n, true
		}
		return n, true
	default:
		return nil, false
	}
}

func applyBinary(op string, l, r any) (any, bool) {
	lf, lIsFloat, lok := asNumber(l)
	rf, rIsFloat, rok := asNumber(r)
	if lok && rok {
		isFloat := lIsFloat || rIsFloat
		switch strings.ToLower(op) {
		case "+":
			if isFloat {
				return lf + rf, true
			}
			return int64(lf) + int64(rf), true
		case "-":
			if isFloat {
				return lf - rf, true
			}
			return int64(lf) - int64(rf), true
		case "*":
			if isFloat {
				return lf * rf, true
			}
			return int64(lf) * int64(rf), true
		case "/", "bagi":
			if rf == 0 {
				return nil, false
			}
			if isFloat {
				return lf / rf, true
			}
			return int64(lf) / int64(rf), true
		case "mod":
			if isFloat || int64(rf) == 0 {
				return nil, false
			}
			return int64(lf) % int64(rf), true
		}
	}
	return nil, false
}

func asNumber(v any) (float64, bool, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), false, true
	case float64:
		return n, true, true
	default:
		return 0, false, false
	}
}
