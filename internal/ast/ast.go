// Package ast defines the decorated abstract syntax tree produced by the
// semantic analyzer: every node here already carries a resolved type and,
// where applicable, a symbol table reference, unlike the untyped parse
// tree in package parsetree.
//
// Node kinds are closed Go types implementing the Node interface, not a
// tagged union keyed by string, so a consumer dispatches with a type
// switch instead of a name lookup.
package ast

import (
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
	node()
}

// Expression is a Node that yields a value of some BaseType.
type Expression interface {
	Node
	Type() symboltable.BaseType
	expressionNode()
}

// Statement is a Node with no inherent value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a decorated tree: a name, its declarations and
// its single compound statement body.
type Program struct {
	Position token.Position
	Name     string
	Consts   []*ConstDecl
	Types    []*TypeDecl
	Vars     []*VarDecl
	Subs     []*SubprogramDecl
	Body     *Compound
}

func (p *Program) Pos() token.Position { return p.Position }
func (p *Program) node()               {}

// ConstDecl binds name to a folded literal value and its inferred type.
type ConstDecl struct {
	Position token.Position
	Name     string
	Value    any
	ValType  symboltable.BaseType
}

func (c *ConstDecl) Pos() token.Position { return c.Position }
func (c *ConstDecl) node()               {}

// TypeDecl binds a name to a type description (an alias, a range, an
// array or a record), recorded in the symbol table's atab when it is an
// array or a range; ValType alone describes scalar aliases and records.
type TypeDecl struct {
	Position token.Position
	Name     string
	ValType  symboltable.BaseType
	ArrayRef int // index into the symbol table's Atab, or -1
}

func (t *TypeDecl) Pos() token.Position { return t.Position }
func (t *TypeDecl) node()               {}

// VarDecl declares one variable of a resolved type in the block it was
// declared in (BlockIndex mirrors the display-stack top at declaration
// time, so a nested subprogram's locals carry that subprogram's block).
type VarDecl struct {
	Position   token.Position
	Name       string
	ValType    symboltable.BaseType
	ArrayRef   int // index into Atab when ValType is Array or Range, else -1
	BlockIndex int
	TabIndex   int
}

func (v *VarDecl) Pos() token.Position { return v.Position }
func (v *VarDecl) node()               {}

// SubprogramDecl is a PROCEDURE or FUNCTION declaration: Params holds the
// formal parameter list, ReturnType is Void for a procedure, Body is the
// analyzed nested block (its own declarations plus compound statement).
type SubprogramDecl struct {
	Position   token.Position
	Name       string
	IsFunction bool
	Params     []*Param
	ReturnType symboltable.BaseType
	BlockIndex int
	TabIndex   int

	Consts []*ConstDecl
	Types  []*TypeDecl
	Vars   []*VarDecl
	Subs   []*SubprogramDecl
	Body   *Compound
}

func (s *SubprogramDecl) Pos() token.Position { return s.Position }
func (s *SubprogramDecl) node()               {}

// Param is a single formal parameter: ByRef mirrors the symbol table's
// Entry.Nrm == false (a VAR-style parameter, passed by reference).
type Param struct {
	Name    string
	ValType symboltable.BaseType
	ByRef   bool
}

// Compound is a `mulai ... selesai` statement block.
type Compound struct {
	Position   token.Position
	Statements []Statement
}

func (c *Compound) Pos() token.Position { return c.Position }
func (c *Compound) node()               {}
func (c *Compound) statementNode()      {}

// Assignment is `<variable> := <expression>`.
type Assignment struct {
	Position token.Position
	Target   *VariableRef
	Value    Expression
}

func (a *Assignment) Pos() token.Position { return a.Position }
func (a *Assignment) node()               {}
func (a *Assignment) statementNode()      {}

// ProcedureCall is a call statement; a call inside an expression is a
// FunctionCall instead.
type ProcedureCall struct {
	Position token.Position
	Name     string
	TabIndex int // -1 for a builtin I/O procedure
	Args     []Expression
}

func (c *ProcedureCall) Pos() token.Position { return c.Position }
func (c *ProcedureCall) node()               {}
func (c *ProcedureCall) statementNode()      {}

// FunctionCall is the expression-position counterpart of ProcedureCall.
type FunctionCall struct {
	Position token.Position
	Name     string
	TabIndex int
	Args     []Expression
	ValType  symboltable.BaseType
}

func (f *FunctionCall) Pos() token.Position           { return f.Position }
func (f *FunctionCall) node()                         {}
func (f *FunctionCall) expressionNode()                {}
func (f *FunctionCall) Type() symboltable.BaseType    { return f.ValType }

// IfStatement is `jika <cond> maka <then> [selainitu <else>]`.
type IfStatement struct {
	Position token.Position
	Cond     Expression
	Then     Statement
	Else     Statement // nil when no selainitu clause
}

func (i *IfStatement) Pos() token.Position { return i.Position }
func (i *IfStatement) node()               {}
func (i *IfStatement) statementNode()      {}

// WhileStatement is `selama <cond> lakukan <body>`.
type WhileStatement struct {
	Position token.Position
	Cond     Expression
	Body     Statement
}

func (w *WhileStatement) Pos() token.Position { return w.Position }
func (w *WhileStatement) node()               {}
func (w *WhileStatement) statementNode()      {}

// ForStatement is `untuk IDENT := <from> (ke|turunke) <to> lakukan <body>`.
type ForStatement struct {
	Position   token.Position
	Var        string
	TabIndex   int
	From       Expression
	To         Expression
	CountsDown bool
	Body       Statement
}

func (f *ForStatement) Pos() token.Position { return f.Position }
func (f *ForStatement) node()               {}
func (f *ForStatement) statementNode()      {}

// RepeatStatement is `ulangi <stmts> sampai <cond>`.
type RepeatStatement struct {
	Position   token.Position
	Statements []Statement
	Cond       Expression
}

func (r *RepeatStatement) Pos() token.Position { return r.Position }
func (r *RepeatStatement) node()               {}
func (r *RepeatStatement) statementNode()      {}

// CaseStatement is `kasus <expr> dari {<consts>: <stmt>} selesai`.
type CaseStatement struct {
	Position token.Position
	Subject  Expression
	Elements []*CaseElement
}

func (c *CaseStatement) Pos() token.Position { return c.Position }
func (c *CaseStatement) node()               {}
func (c *CaseStatement) statementNode()      {}

// CaseElement is one `<consts>: <stmt>` arm of a CaseStatement.
type CaseElement struct {
	Values []any
	Body   Statement
}

// BinaryExpression is any two-operand expression: relational, additive or
// multiplicative, distinguished by Op.
type BinaryExpression struct {
	Position token.Position
	Op       string
	Left     Expression
	Right    Expression
	ValType  symboltable.BaseType
}

func (b *BinaryExpression) Pos() token.Position        { return b.Position }
func (b *BinaryExpression) node()                      {}
func (b *BinaryExpression) expressionNode()             {}
func (b *BinaryExpression) Type() symboltable.BaseType { return b.ValType }

// NotExpression is the unary `tidak <factor>`.
type NotExpression struct {
	Position token.Position
	Operand  Expression
}

func (n *NotExpression) Pos() token.Position        { return n.Position }
func (n *NotExpression) node()                      {}
func (n *NotExpression) expressionNode()             {}
func (n *NotExpression) Type() symboltable.BaseType { return symboltable.Boolean }

// UnaryExpression is a leading `+`/`-` sign applied to a simple-expression.
type UnaryExpression struct {
	Position token.Position
	Op       string
	Operand  Expression
	ValType  symboltable.BaseType
}

func (u *UnaryExpression) Pos() token.Position        { return u.Position }
func (u *UnaryExpression) node()                      {}
func (u *UnaryExpression) expressionNode()             {}
func (u *UnaryExpression) Type() symboltable.BaseType { return u.ValType }

// VariableRef is a resolved reference to a declared variable, optionally
// indexed (array element) or field-accessed (record field).
type VariableRef struct {
	Position token.Position
	Name     string
	TabIndex int
	ValType  symboltable.BaseType

	Index    Expression // non-nil for an array element access
	ArrayRef int        // the atab index this VariableRef indexes into, or -1
	Field    string      // non-empty for a record field access
}

func (v *VariableRef) Pos() token.Position        { return v.Position }
func (v *VariableRef) node()                      {}
func (v *VariableRef) expressionNode()             {}
func (v *VariableRef) Type() symboltable.BaseType { return v.ValType }

// ConstantRef is a resolved reference to a named constant; its value is
// carried so the analyzer can fold expressions containing it.
type ConstantRef struct {
	Position token.Position
	Name     string
	Value    any
	ValType  symboltable.BaseType
}

func (c *ConstantRef) Pos() token.Position        { return c.Position }
func (c *ConstantRef) node()                      {}
func (c *ConstantRef) expressionNode()             {}
func (c *ConstantRef) Type() symboltable.BaseType { return c.ValType }

// NumberLiteral is an INTEGER or REAL literal.
type NumberLiteral struct {
	Position token.Position
	Value    any // int64 or float64
	ValType  symboltable.BaseType
}

func (n *NumberLiteral) Pos() token.Position        { return n.Position }
func (n *NumberLiteral) node()                      {}
func (n *NumberLiteral) expressionNode()             {}
func (n *NumberLiteral) Type() symboltable.BaseType { return n.ValType }

// StringLiteral is a quoted STRING_LITERAL longer than a single char.
type StringLiteral struct {
	Position token.Position
	Value    string
}

func (s *StringLiteral) Pos() token.Position        { return s.Position }
func (s *StringLiteral) node()                      {}
func (s *StringLiteral) expressionNode()             {}
func (s *StringLiteral) Type() symboltable.BaseType { return symboltable.String }

// CharLiteral is a single-character STRING_LITERAL or CHAR_LITERAL.
type CharLiteral struct {
	Position token.Position
	Value    byte
}

func (c *CharLiteral) Pos() token.Position        { return c.Position }
func (c *CharLiteral) node()                      {}
func (c *CharLiteral) expressionNode()             {}
func (c *CharLiteral) Type() symboltable.BaseType { return symboltable.Char }

// BooleanLiteral is `benar` or `salah`.
type BooleanLiteral struct {
	Position token.Position
	Value    bool
}

func (b *BooleanLiteral) Pos() token.Position        { return b.Position }
func (b *BooleanLiteral) node()                      {}
func (b *BooleanLiteral) expressionNode()             {}
func (b *BooleanLiteral) Type() symboltable.BaseType { return symboltable.Boolean }
