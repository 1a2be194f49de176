package semantic

import (
	"strconv"
	"strings"

	"github.com/bahasapas-lang/bahasapasc/internal/ast"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

func (a *Analyzer) analyzeCompound(node *parsetree.Node) *ast.Compound {
	list := node.Children[1]
	var stmts []ast.Statement
	for _, child := range list.Children {
		if child.Kind != parsetree.KindStatement {
			continue
		}
		if s := a.analyzeStatement(child); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &ast.Compound{Position: firstPos(node), Statements: stmts}
}

// analyzeStatement dispatches on the single inner child a <statement>
// wraps; an empty statement (a bare semicolon) has no children at all.
func (a *Analyzer) analyzeStatement(node *parsetree.Node) ast.Statement {
	if len(node.Children) == 0 {
		return nil
	}
	inner := node.Children[0]
	switch inner.Kind {
	case parsetree.KindAssignment:
		return a.analyzeAssignment(inner)
	case parsetree.KindProcedureCall:
		return a.analyzeProcedureCallStatement(inner)
	case parsetree.KindIf:
		return a.analyzeIfStatement(inner)
	case parsetree.KindWhile:
		return a.analyzeWhileStatement(inner)
	case parsetree.KindFor:
		return a.analyzeForStatement(inner)
	case parsetree.KindRepeat:
		return a.analyzeRepeatStatement(inner)
	case parsetree.KindCase:
		return a.analyzeCaseStatement(inner)
	case parsetree.KindCompoundStatement:
		return a.analyzeCompound(inner)
	default:
		return nil
	}
}

func (a *Analyzer) analyzeAssignment(node *parsetree.Node) *ast.Assignment {
	target := a.analyzeVariable(node.Children[0])
	value := a.analyzeExpression(node.Children[2])

	if target.TabIndex >= 0 {
		entry := a.table.Entry(target.TabIndex)
		if entry.Obj == symboltable.ObjConstant {
			a.errorf(target.Position, "Cannot assign to constant '%s'", target.Name)
		} else if !typesCompatible(target.ValType, value.Type()) {
			a.errorf(value.Pos(), "Type mismatch in assignment: cannot assign %s to %s",
				value.Type(), target.ValType)
		}
	}

	return &ast.Assignment{Position: target.Position, Target: target, Value: value}
}

// analyzeVariable resolves `IDENT {'.' IDENT | '[' <expr> {',' <expr>} ']'}`,
// checking array-index bounds against the declared range when both the
// index and the array's bounds are compile-time constants.
func (a *Analyzer) analyzeVariable(node *parsetree.Node) *ast.VariableRef {
	nameTok := node.Children[0].Token
	idx := a.table.FindIdentifier(nameTok.Lexeme)
	if idx < 0 {
		a.errorf(nameTok.Pos, "undeclared identifier %q", nameTok.Lexeme)
		return &ast.VariableRef{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: -1, ValType: symboltable.Void, ArrayRef: -1}
	}
	entry := a.table.Entry(idx)
	ref := &ast.VariableRef{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: idx, ValType: entry.Type, ArrayRef: entry.Ref}

	i := 1
	for i < len(node.Children) {
		switch {
		case node.Children[i].IsLeaf() && node.Children[i].Token.Kind == token.DOT:
			fieldTok := node.Children[i+1].Token
			ref.Field = fieldTok.Lexeme
			i += 2
		case node.Children[i].IsLeaf() && node.Children[i].Token.Kind == token.LBRACKET:
			i++
			indexExpr := a.analyzeExpression(node.Children[i])
			i++
			if ref.ValType != symboltable.Array {
				a.errorf(nameTok.Pos, "%q is not an array", nameTok.Lexeme)
			} else {
				arrInfo := a.table.Array(ref.ArrayRef)
				a.checkArrayBounds(indexExpr, arrInfo)
				ref = &ast.VariableRef{
					Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: idx,
					ValType: arrInfo.ElementType, ArrayRef: arrInfo.Eref, Index: indexExpr,
				}
			}
			for i < len(node.Children) && node.Children[i].IsLeaf() && node.Children[i].Token.Kind == token.COMMA {
				i++
				indexExpr := a.analyzeExpression(node.Children[i])
				i++
				if ref.ValType == symboltable.Array {
					arrInfo := a.table.Array(ref.ArrayRef)
					a.checkArrayBounds(indexExpr, arrInfo)
					ref = &ast.VariableRef{
						Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: idx,
						ValType: arrInfo.ElementType, ArrayRef: arrInfo.Eref, Index: indexExpr,
					}
				}
			}
			if i < len(node.Children) && node.Children[i].IsLeaf() && node.Children[i].Token.Kind == token.RBRACKET {
				i++
			}
		default:
			i++
		}
	}
	return ref
}

// checkArrayBounds reports an out-of-range diagnostic only when the index
// expression folds to a compile-time constant, matching the reference
// implementation's check_array_bounds: a run-time-only index is left for
// a hypothetical bounds-checked runtime, not flagged here.
func (a *Analyzer) checkArrayBounds(indexExpr ast.Expression, arr *symboltable.ArrayInfo) {
	v, ok := a.foldConstant(indexExpr)
	if !ok {
		return
	}
	n, isInt := v.(int64)
	if !isInt {
		return
	}
	if int(n) < arr.Low || int(n) > arr.High {
		a.errorf(indexExpr.Pos(), "Array index %d out of bounds [%d..%d]", n, arr.Low, arr.High)
	}
}

func (a *Analyzer) analyzeProcedureCallStatement(node *parsetree.Node) *ast.ProcedureCall {
	nameTok := node.Children[0].Token
	var args []ast.Expression
	if len(node.Children) > 1 {
		args = a.analyzeParameterList(node.Children[1])
	}

	if isBuiltinIO(nameTok.Lexeme) {
		return &ast.ProcedureCall{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: -1, Args: args}
	}

	idx := a.table.FindIdentifier(nameTok.Lexeme)
	if idx < 0 {
		a.errorf(nameTok.Pos, "undeclared procedure %q", nameTok.Lexeme)
		return &ast.ProcedureCall{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: -1, Args: args}
	}
	entry := a.table.Entry(idx)
	if entry.Obj != symboltable.ObjProcedure && entry.Obj != symboltable.ObjFunction {
		a.errorf(nameTok.Pos, "%q is not a procedure", nameTok.Lexeme)
	} else {
		a.validateParameters(nameTok, idx, args)
	}
	return &ast.ProcedureCall{Position: nameTok.Pos, Name: nameTok.Lexeme, TabIndex: idx, Args: args}
}

func (a *Analyzer) analyzeIfStatement(node *parsetree.Node) *ast.IfStatement {
	cond := a.analyzeExpression(node.Children[1])
	then := a.analyzeStatement(node.Children[3])
	result := &ast.IfStatement{Position: firstPos(node), Cond: cond, Then: then}
	if len(node.Children) > 5 {
		result.Else = a.analyzeStatement(node.Children[5])
	}
	return result
}

func (a *Analyzer) analyzeWhileStatement(node *parsetree.Node) *ast.WhileStatement {
	cond := a.analyzeExpression(node.Children[1])
	body := a.analyzeStatement(node.Children[3])
	return &ast.WhileStatement{Position: firstPos(node), Cond: cond, Body: body}
}

func (a *Analyzer) analyzeForStatement(node *parsetree.Node) *ast.ForStatement {
	nameTok := node.Children[1].Token
	idx := a.table.FindIdentifier(nameTok.Lexeme)
	if idx < 0 {
		a.errorf(nameTok.Pos, "undeclared identifier %q", nameTok.Lexeme)
	}
	from := a.analyzeExpression(node.Children[3])
	dirTok := node.Children[4].Token
	to := a.analyzeExpression(node.Children[5])
	body := a.analyzeStatement(node.Children[7])
	return &ast.ForStatement{
		Position: firstPos(node), Var: nameTok.Lexeme, TabIndex: idx,
		From: from, To: to, CountsDown: strings.EqualFold(dirTok.Lexeme, "turunke"), Body: body,
	}
}

func (a *Analyzer) analyzeRepeatStatement(node *parsetree.Node) *ast.RepeatStatement {
	list := node.Children[1]
	var stmts []ast.Statement
	for _, child := range list.Children {
		if child.Kind != parsetree.KindStatement {
			continue
		}
		if s := a.analyzeStatement(child); s != nil {
			stmts = append(stmts, s)
		}
	}
	cond := a.analyzeExpression(node.Children[3])
	return &ast.RepeatStatement{Position: firstPos(node), Statements: stmts, Cond: cond}
}

func (a *Analyzer) analyzeCaseStatement(node *parsetree.Node) *ast.CaseStatement {
	subject := a.analyzeExpression(node.Children[1])
	result := &ast.CaseStatement{Position: firstPos(node), Subject: subject}
	for _, child := range node.Children {
		if child.Kind != parsetree.KindCaseElement {
			continue
		}
		result.Elements = append(result.Elements, a.analyzeCaseElement(child))
	}
	return result
}

func (a *Analyzer) analyzeCaseElement(node *parsetree.Node) *ast.CaseElement {
	list := node.Children[0]
	var values []any
	for _, child := range list.Children {
		if child.Kind != parsetree.KindConstValue {
			continue
		}
		tok := child.Children[0].Token
		values = append(values, constValueLiteral(tok))
	}
	body := a.analyzeStatement(node.Children[2])
	return &ast.CaseElement{Values: values, Body: body}
}

func constValueLiteral(tok *token.Token) any {
	switch tok.Kind {
	case token.NUMBER:
		if strings.Contains(tok.Lexeme, ".") {
			f, _ := strconv.ParseFloat(tok.Lexeme, 64)
			return f
		}
		n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return n
	default:
		return unquoteStringLiteral(tok.Lexeme)
	}
}
