// Package semantic walks a parsetree.Node and produces a decorated
// ast.Program plus a populated symboltable.Table, accumulating
// diagnostics.Diagnostic values for every type or scope violation it
// finds along the way rather than stopping at the first one.
//
// Dispatch is a Go switch keyed on parsetree.Kind, not the string-keyed
// "visit_<kind>" reflection dispatch a naive port of the reference
// implementation would use. The compiler type-checks every case label
// against the Kind enumeration but does not check a switch for
// exhaustiveness: a Kind with no case is skipped or takes the default
// branch.
package semantic

import (
	"github.com/bahasapas-lang/bahasapasc/internal/ast"
	"github.com/bahasapas-lang/bahasapasc/internal/diagnostics"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// Analyzer walks a single parse tree to completion, collecting errors
// without aborting: a type error in one statement does not prevent the
// rest of the program from being checked.
type Analyzer struct {
	table *symboltable.Table
	diags []diagnostics.Diagnostic
}

// Analyze runs semantic analysis over tree (the root of a <program>
// parse tree) and returns the decorated program, the populated symbol
// table, and any diagnostics raised along the way.
func Analyze(tree *parsetree.Node) (*ast.Program, *symboltable.Table, []diagnostics.Diagnostic) {
	a := &Analyzer{table: symboltable.New()}
	prog := a.analyzeProgram(tree)
	return prog, a.table, a.diags
}

func (a *Analyzer) errorf(pos token.Position, format string, args ...any) {
	a.diags = append(a.diags, diagnostics.New(diagnostics.SevSemantic, pos, format, args...))
}

func (a *Analyzer) analyzeProgram(tree *parsetree.Node) *ast.Program {
	header := tree.Children[0]
	nameTok := header.Children[1].Token

	a.table.EnterBlock()

	decls := tree.Children[1]
	consts, types, vars, subs := a.analyzeDeclarationPart(decls)

	body := a.analyzeCompound(tree.Children[2])

	return &ast.Program{
		Position: nameTok.Pos,
		Name:     nameTok.Lexeme,
		Consts:   consts,
		Types:    types,
		Vars:     vars,
		Subs:     subs,
		Body:     body,
	}
}
