// Package parsetree defines the homogeneous parse tree produced by the
// parser: every node carries a non-terminal Kind, an optional terminal
// token, and an ordered list of children. Leaf nodes (Token != nil) have
// no children.
//
// Kind is a closed, generated enumeration rather than a free-form string,
// per the decision recorded in SPEC_FULL.md §4.5: dispatch over a parse
// tree is meant to be an exhaustive switch on Kind, not a string lookup.
package parsetree

import "github.com/bahasapas-lang/bahasapasc/internal/token"

// Kind enumerates every non-terminal (and a handful of leaf pseudo-kinds)
// that can appear in a parse tree, one entry per grammar production named
// in SPEC_FULL.md §4.2.
type Kind int

const (
	KindProgram Kind = iota
	KindProgramHeader
	KindDeclarationPart
	KindConstDecl
	KindConstItem
	KindConstValue
	KindTypeDecl
	KindTypeItem
	KindTypeDefinition
	KindVarDecl
	KindVarItem
	KindIdentifierList
	KindType
	KindArrayType
	KindIndexSpecification
	KindRange
	KindRecordType
	KindSubprogramDecl
	KindProcedureDecl
	KindFunctionDecl
	KindFormalParameterList
	KindParameterGroup
	KindBlock
	KindCompoundStatement
	KindStatementList
	KindStatement
	KindAssignment
	KindVariable
	KindIf
	KindWhile
	KindFor
	KindRepeat
	KindCase
	KindCaseElement
	KindConstantList
	KindProcedureCall
	KindParameterList
	KindExpression
	KindSimpleExpression
	KindTerm
	KindFactor
	KindRelOp
	KindAddOp
	KindMulOp

	// KindLeaf marks a node that wraps a single terminal token with no
	// grammar-level name of its own (identifiers, literals, punctuation).
	KindLeaf
)

var kindNames = [...]string{
	"<program>", "<program-header>", "<declaration-part>", "<const-decl>",
	"<const-item>", "<const-value>", "<type-decl>", "<type-item>",
	"<type-definition>", "<var-decl>", "<var-item>", "<identifier-list>",
	"<type>", "<array-type>", "<index-specification>", "<range>",
	"<record-type>", "<subprogram-decl>", "<procedure-decl>", "<function-decl>",
	"<formal-parameter-list>", "<parameter-group>", "<block>",
	"<compound-statement>", "<statement-list>", "<statement>", "<assignment>",
	"<variable>", "<if>", "<while>", "<for>", "<repeat>", "<case>",
	"<case-element>", "<constant-list>", "<procedure-call>", "<parameter-list>",
	"<expression>", "<simple-expression>", "<term>", "<factor>", "<rel-op>",
	"<add-op>", "<mul-op>", "LEAF",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown>"
}

// Node is a single parse tree node. A leaf node has Token set and no
// Children; a non-terminal node has Children and, for simple single-token
// productions (operators, punctuation captured for ambiguity resolution),
// may also carry Token.
type Node struct {
	Kind     Kind
	Token    *token.Token
	Children []*Node
}

// Leaf builds a terminal node directly wrapping tok.
func Leaf(tok token.Token) *Node {
	t := tok
	return &Node{Kind: KindLeaf, Token: &t}
}

// New builds a non-terminal node of the given kind with the given children.
func New(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether n is a terminal (token-bearing, childless) node.
func (n *Node) IsLeaf() bool {
	return n.Token != nil && len(n.Children) == 0
}
