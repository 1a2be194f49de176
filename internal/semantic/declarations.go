package semantic

import (
	"github.com/bahasapas-lang/bahasapasc/internal/ast"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// scalarSize is the uniform word size used for every scalar in Adr/Vsze
// bookkeeping; the analyzer never emits code, so only relative offsets
// (not a real machine word width) matter here.
const scalarSize = 1

// checkDuplicateIdentifier reports and returns true if name already names
// something in the currently open block. FindIdentifier searches outward
// from the current level, so a match whose Lev equals the table's current
// level was declared in this same block (a genuine redeclaration); a match
// at an outer level is legitimate shadowing and is left alone.
func (a *Analyzer) checkDuplicateIdentifier(name string, pos token.Position) bool {
	idx := a.table.FindIdentifier(name)
	if idx < 0 {
		return false
	}
	if a.table.Entry(idx).Lev == a.table.Level {
		a.errorf(pos, "Duplicate identifier '%s'", name)
		return true
	}
	return false
}

// analyzeDeclarationPart processes const/type/var/subprogram declarations
// in the strict grammar order the parser already enforced, entering each
// name into the currently open block of the symbol table as it goes.
func (a *Analyzer) analyzeDeclarationPart(node *parsetree.Node) (consts []*ast.ConstDecl, types []*ast.TypeDecl, vars []*ast.VarDecl, subs []*ast.SubprogramDecl) {
	for _, child := range node.Children {
		switch child.Kind {
		case parsetree.KindConstDecl:
			consts = append(consts, a.analyzeConstDeclaration(child)...)
		case parsetree.KindTypeDecl:
			types = append(types, a.analyzeTypeDeclaration(child)...)
		case parsetree.KindVarDecl:
			vars = append(vars, a.analyzeVarDeclaration(child)...)
		case parsetree.KindSubprogramDecl:
			subs = append(subs, a.analyzeSubprogramDeclaration(child))
		}
	}
	return
}

func (a *Analyzer) analyzeConstDeclaration(node *parsetree.Node) []*ast.ConstDecl {
	var out []*ast.ConstDecl
	for _, child := range node.Children {
		if child.Kind != parsetree.KindConstItem {
			continue
		}
		out = append(out, a.analyzeConstItem(child))
	}
	return out
}

func (a *Analyzer) analyzeConstItem(node *parsetree.Node) *ast.ConstDecl {
	nameTok := node.Children[0].Token
	valueNode := node.Children[2].Children[0] // <const-value> wraps a single leaf token

	var value any
	var valType symboltable.BaseType

	if valueNode.IsLeaf() && valueNode.Token.Kind == token.IDENTIFIER {
		idx := a.table.FindIdentifier(valueNode.Token.Lexeme)
		if idx < 0 {
			a.errorf(valueNode.Token.Pos, "undeclared identifier %q in constant expression", valueNode.Token.Lexeme)
		} else {
			entry := a.table.Entry(idx)
			if entry.Obj != symboltable.ObjConstant {
				a.errorf(valueNode.Token.Pos, "%q is not a constant", valueNode.Token.Lexeme)
			}
			value, valType = entry.ConstValue, entry.Type
		}
	} else {
		lit := a.literalFromToken(valueNode.Token)
		value, _ = a.foldConstant(lit)
		valType = lit.Type()
	}

	if a.checkDuplicateIdentifier(nameTok.Lexeme, nameTok.Pos) {
		return &ast.ConstDecl{Position: nameTok.Pos, Name: nameTok.Lexeme, Value: value, ValType: valType}
	}

	idx := a.table.EnterIdentifier(nameTok.Lexeme, symboltable.ObjConstant, valType, 0)
	a.table.SetConstValue(nameTok.Lexeme, value)
	a.table.Entry(idx).ConstValue = value

	return &ast.ConstDecl{Position: nameTok.Pos, Name: nameTok.Lexeme, Value: value, ValType: valType}
}

func (a *Analyzer) analyzeTypeDeclaration(node *parsetree.Node) []*ast.TypeDecl {
	var out []*ast.TypeDecl
	for _, child := range node.Children {
		if child.Kind != parsetree.KindTypeItem {
			continue
		}
		out = append(out, a.analyzeTypeItem(child))
	}
	return out
}

func (a *Analyzer) analyzeTypeItem(node *parsetree.Node) *ast.TypeDecl {
	nameTok := node.Children[0].Token
	defNode := node.Children[2] // <type-definition>

	valType, arrayRef := a.analyzeTypeDefinition(defNode)

	if a.checkDuplicateIdentifier(nameTok.Lexeme, nameTok.Pos) {
		return &ast.TypeDecl{Position: nameTok.Pos, Name: nameTok.Lexeme, ValType: valType, ArrayRef: arrayRef}
	}

	idx := a.table.EnterIdentifier(nameTok.Lexeme, symboltable.ObjType_, valType, 0)
	if arrayRef >= 0 {
		a.table.SetRef(idx, arrayRef)
	}
	return &ast.TypeDecl{Position: nameTok.Pos, Name: nameTok.Lexeme, ValType: valType, ArrayRef: arrayRef}
}

// analyzeTypeDefinition resolves `<range> | <type>`.
func (a *Analyzer) analyzeTypeDefinition(node *parsetree.Node) (symboltable.BaseType, int) {
	child := node.Children[0]
	if child.Kind == parsetree.KindRange {
		low, high := a.analyzeRangeBounds(child)
		ref := a.table.EnterArray(symboltable.Integer, symboltable.Integer, low, high, scalarSize)
		return symboltable.Range, ref
	}
	return a.analyzeType(child)
}

// analyzeType resolves `<type>`: a base-type keyword, a named type
// reference, an array type or a record type.
func (a *Analyzer) analyzeType(node *parsetree.Node) (symboltable.BaseType, int) {
	child := node.Children[0]

	if child.IsLeaf() {
		tok := child.Token
		if bt, ok := baseTypeKeyword(tok.Lexeme); ok {
			return bt, -1
		}
		// Named type reference.
		idx := a.table.FindIdentifier(tok.Lexeme)
		if idx < 0 {
			a.errorf(tok.Pos, "undeclared type %q", tok.Lexeme)
			return symboltable.Void, -1
		}
		entry := a.table.Entry(idx)
		if entry.Obj != symboltable.ObjType_ {
			a.errorf(tok.Pos, "%q is not a type", tok.Lexeme)
			return symboltable.Void, -1
		}
		return entry.Type, entry.Ref
	}

	switch child.Kind {
	case parsetree.KindArrayType:
		return a.analyzeArrayType(child)
	case parsetree.KindRecordType:
		return symboltable.Record, -1
	default:
		return symboltable.Void, -1
	}
}

func baseTypeKeyword(lexeme string) (symboltable.BaseType, bool) {
	switch lowerASCII(lexeme) {
	case "integer":
		return symboltable.Integer, true
	case "real":
		return symboltable.Real, true
	case "boolean":
		return symboltable.Boolean, true
	case "char":
		return symboltable.Char, true
	case "string":
		return symboltable.String, true
	default:
		return symboltable.Void, false
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// analyzeArrayType resolves `larik '[' <index-spec> {',' <index-spec>} ']'
// dari <type>`, building nested atab entries innermost-first so a
// multi-dimensional array is represented as an array of arrays.
func (a *Analyzer) analyzeArrayType(node *parsetree.Node) (symboltable.BaseType, int) {
	var specs []*parsetree.Node
	for _, child := range node.Children {
		if child.Kind == parsetree.KindIndexSpecification {
			specs = append(specs, child)
		}
	}
	elemTypeNode := node.Children[len(node.Children)-1]
	elemType, elemRef := a.analyzeType(elemTypeNode)

	curType, curRef := elemType, elemRef
	for i := len(specs) - 1; i >= 0; i-- {
		low, high := a.analyzeIndexSpecification(specs[i])
		ref := a.table.EnterArray(symboltable.Integer, curType, low, high, scalarSize)
		a.table.Array(ref).Eref = curRef
		curType, curRef = symboltable.Array, ref
	}
	return symboltable.Array, curRef
}

// analyzeIndexSpecification resolves `<range> | <simple-expression>`. The
// simple-expression form names a previously declared range type used as
// an index; its declared bounds are reused. A literal simple expression
// with no range type behind it is treated as a 1-based upper bound.
func (a *Analyzer) analyzeIndexSpecification(node *parsetree.Node) (int, int) {
	child := node.Children[0]
	if child.Kind == parsetree.KindRange {
		return a.analyzeRangeBounds(child)
	}

	if ident, ok := soleIdentifier(child); ok {
		idx := a.table.FindIdentifier(ident)
		if idx >= 0 {
			entry := a.table.Entry(idx)
			if entry.Obj == symboltable.ObjType_ && entry.Type == symboltable.Range && entry.Ref >= 0 {
				info := a.table.Array(entry.Ref)
				return info.Low, info.High
			}
		}
	}

	expr := a.analyzeSimpleExpression(child)
	v, ok := a.foldConstant(expr)
	high, isInt := v.(int64)
	if !ok || !isInt {
		a.errorf(firstPos(child), "array bound must be a constant integer expression")
		return 0, -1
	}
	return 1, int(high)
}

func soleIdentifier(node *parsetree.Node) (string, bool) {
	if node.Kind == parsetree.KindSimpleExpression && len(node.Children) == 1 {
		term := node.Children[0]
		if term.Kind == parsetree.KindTerm && len(term.Children) == 1 {
			factor := term.Children[0]
			if factor.Kind == parsetree.KindFactor && len(factor.Children) == 1 {
				leaf := factor.Children[0]
				if leaf.IsLeaf() && leaf.Token.Kind == token.IDENTIFIER {
					return leaf.Token.Lexeme, true
				}
			}
		}
	}
	return "", false
}

func (a *Analyzer) analyzeRangeBounds(node *parsetree.Node) (int, int) {
	lowExpr := a.analyzeSimpleExpression(node.Children[0])
	highExpr := a.analyzeSimpleExpression(node.Children[len(node.Children)-1])
	lowVal, lowOK := a.foldConstant(lowExpr)
	highVal, highOK := a.foldConstant(highExpr)
	low, lowInt := lowVal.(int64)
	high, highInt := highVal.(int64)
	if !lowOK || !highOK || !lowInt || !highInt {
		a.errorf(firstPos(node.Children[0]), "range bounds must be constant integer expressions")
		return 0, -1
	}
	if low > high {
		a.errorf(firstPos(node.Children[0]), "Invalid array bounds: %d..%d (lower bound > upper bound)", low, high)
	}
	return int(low), int(high)
}

func (a *Analyzer) analyzeVarDeclaration(node *parsetree.Node) []*ast.VarDecl {
	var out []*ast.VarDecl
	for _, child := range node.Children {
		if child.Kind != parsetree.KindVarItem {
			continue
		}
		out = append(out, a.analyzeVarItem(child)...)
	}
	return out
}

func (a *Analyzer) analyzeVarItem(node *parsetree.Node) []*ast.VarDecl {
	idents := node.Children[0]
	typeNode := node.Children[2]
	valType, arrayRef := a.analyzeType(typeNode)

	var out []*ast.VarDecl
	for _, c := range idents.Children {
		if !c.IsLeaf() || c.Token.Kind != token.IDENTIFIER {
			continue
		}
		if a.checkDuplicateIdentifier(c.Token.Lexeme, c.Token.Pos) {
			continue
		}
		idx := a.table.EnterIdentifier(c.Token.Lexeme, symboltable.ObjVariable, valType, scalarSize)
		if arrayRef >= 0 {
			a.table.SetRef(idx, arrayRef)
		}
		out = append(out, &ast.VarDecl{
			Position: c.Token.Pos, Name: c.Token.Lexeme, ValType: valType,
			ArrayRef: arrayRef, BlockIndex: a.table.CurrentBlock(), TabIndex: idx,
		})
	}
	return out
}

// analyzeSubprogramDeclaration opens a new block for the subprogram body,
// enters its formal parameters, analyzes the nested block, then leaves
// the block: scope is strictly paired, mirroring enterBlock/leaveBlock in
// the reference implementation's visit_procedure_declaration.
func (a *Analyzer) analyzeSubprogramDeclaration(node *parsetree.Node) *ast.SubprogramDecl {
	inner := node.Children[0]
	isFunction := inner.Kind == parsetree.KindFunctionDecl
	nameTok := inner.Children[1].Token

	obj := symboltable.ObjProcedure
	if isFunction {
		obj = symboltable.ObjFunction
	}

	var retType symboltable.BaseType = symboltable.Void
	// Locate the optional formal-parameter-list and (for functions) the
	// return-type node among inner's children by kind, since their
	// position shifts depending on whether parameters are present.
	var paramListNode *parsetree.Node
	var blockNode *parsetree.Node
	for _, c := range inner.Children {
		switch c.Kind {
		case parsetree.KindFormalParameterList:
			paramListNode = c
		case parsetree.KindType:
			retType, _ = a.analyzeType(c)
		case parsetree.KindBlock:
			blockNode = c
		}
	}

	var declIdx int
	if a.checkDuplicateIdentifier(nameTok.Lexeme, nameTok.Pos) {
		declIdx = a.table.FindIdentifier(nameTok.Lexeme)
	} else {
		declIdx = a.table.EnterIdentifier(nameTok.Lexeme, obj, retType, 0)
	}

	blockIdx := a.table.EnterBlock()
	a.table.SetBlockIndex(declIdx, blockIdx)

	var params []*ast.Param
	if paramListNode != nil {
		params = a.analyzeFormalParameterList(paramListNode)
	}
	a.table.Btab[blockIdx].ParamCount = len(params)

	consts, types, vars, subs := a.analyzeDeclarationPart(blockNode.Children[0])
	body := a.analyzeCompound(blockNode.Children[1])

	a.table.LeaveBlock()

	return &ast.SubprogramDecl{
		Position: nameTok.Pos, Name: nameTok.Lexeme, IsFunction: isFunction,
		Params: params, ReturnType: retType, BlockIndex: blockIdx, TabIndex: declIdx,
		Consts: consts, Types: types, Vars: vars, Subs: subs, Body: body,
	}
}

func (a *Analyzer) analyzeFormalParameterList(node *parsetree.Node) []*ast.Param {
	var params []*ast.Param
	for _, child := range node.Children {
		if child.Kind != parsetree.KindParameterGroup {
			continue
		}
		idents := child.Children[0]
		typeNode := child.Children[2]
		valType, arrayRef := a.analyzeType(typeNode)
		for _, c := range idents.Children {
			if !c.IsLeaf() || c.Token.Kind != token.IDENTIFIER {
				continue
			}
			idx := a.table.EnterIdentifier(c.Token.Lexeme, symboltable.ObjVariable, valType, scalarSize)
			if arrayRef >= 0 {
				a.table.SetRef(idx, arrayRef)
			}
			a.table.SetParam(idx, false)
			params = append(params, &ast.Param{Name: c.Token.Lexeme, ValType: valType, ByRef: false})
		}
	}
	return params
}

// validateParameters checks a call's actual argument count and (per
// argument) its type against the declared parameter list, applying the
// strict parameter-position rule uniformly regardless of call site.
func (a *Analyzer) validateParameters(nameTok *token.Token, calleeIdx int, args []ast.Expression) {
	entry := a.table.Entry(calleeIdx)
	block := a.table.Btab[entry.BlockIndex]
	if block.ParamCount != len(args) {
		a.errorf(nameTok.Pos, "Parameter count mismatch in %s: expected %d, got %d",
			nameTok.Lexeme, block.ParamCount, len(args))
		return
	}

	paramIdx := firstParamIndex(a.table, entry.BlockIndex, block.ParamCount)
	for i, arg := range args {
		if paramIdx+i >= len(a.table.Tab) {
			break
		}
		param := a.table.Entry(paramIdx + i)
		if param == nil {
			continue
		}
		if !typesCompatible(param.Type, arg.Type()) {
			a.errorf(arg.Pos(), "Parameter type mismatch in %s: parameter %d expects %s, got %s",
				nameTok.Lexeme, i+1, param.Type, arg.Type())
		}
	}
}

// firstParamIndex walks a block's identifier chain to recover the tab
// indices of its formal parameters in declaration order. Parameters were
// entered first in the block, so they occupy the lowest paramCount slots
// reachable by following Link from the block's current Last entry back
// past every non-parameter declared afterward.
func firstParamIndex(t *symboltable.Table, blockIdx, paramCount int) int {
	if paramCount == 0 {
		return -1
	}
	idx := t.Btab[blockIdx].Last
	var chain []int
	for idx >= t.UserIDStart {
		entry := t.Entry(idx)
		if entry == nil {
			break
		}
		if entry.IsParam {
			chain = append(chain, idx)
		}
		idx = entry.Link
	}
	if len(chain) == 0 {
		return -1
	}
	// chain was collected last-declared-first; the first parameter is the
	// last element.
	return chain[len(chain)-1]
}

// typesCompatible applies the reference implementation's is_type_compatible
// rule unconditionally, whether called for a parameter or an assignment:
// exact match, REAL widened from INTEGER, STRING widened from CHAR, and a
// VOID operand (an expression whose type could not be determined, e.g. one
// built on an undeclared identifier) passed through silently so the caller
// doesn't pile a spurious type-mismatch diagnostic on top of the one
// already reported for the underlying undeclared identifier.
func typesCompatible(expected, actual symboltable.BaseType) bool {
	if expected == actual {
		return true
	}
	if expected == symboltable.Void || actual == symboltable.Void {
		return true
	}
	if expected == symboltable.Real && actual == symboltable.Integer {
		return true
	}
	if expected == symboltable.String && actual == symboltable.Char {
		return true
	}
	return false
}
