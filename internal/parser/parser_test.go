package parser

import (
	"testing"

	"github.com/bahasapas-lang/bahasapasc/internal/lexer"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
)

func parseSource(t *testing.T, src string) *parsetree.Node {
	t.Helper()
	toks, lexDiags := lexer.Tokenize(src)
	if len(lexDiags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags)
	}
	tree, diags := Parse(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	return tree
}

func TestParseMinimalProgram(t *testing.T) {
	tree := parseSource(t, "program p; mulai selesai.")
	if tree.Kind != parsetree.KindProgram {
		t.Fatalf("root kind = %s", tree.Kind)
	}
	if len(tree.Children) != 4 {
		t.Fatalf("expected 4 children (header, decls, compound, dot), got %d", len(tree.Children))
	}
}

func TestParseAssignmentVsProcedureCallAmbiguity(t *testing.T) {
	tree := parseSource(t, "program p; variabel x: integer; mulai x:=1; writeln(x) selesai.")
	compound := tree.Children[2]
	stmts := compound.Children[1].Children
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statement-list children (statement, ';', statement), got %d", len(stmts))
	}
	if stmts[0].Children[0].Kind != parsetree.KindAssignment {
		t.Errorf("statement 0 should be an assignment, got %s", stmts[0].Children[0].Kind)
	}
	if stmts[2].Children[0].Kind != parsetree.KindProcedureCall {
		t.Errorf("statement 1 should be a procedure call, got %s", stmts[2].Children[0].Kind)
	}
}

func TestParseArrayIndexSpecificationBacktracking(t *testing.T) {
	// "1..n" is a <range>; a bare constant expression like "n" alone (if it
	// were legal on its own) would fall back to <simple-expression>. Here we
	// confirm the range branch is taken without leaving stray cursor state.
	tree := parseSource(t, "program p; konstanta n=5; variabel a: larik[1..n] dari integer; mulai selesai.")
	varDecl := tree.Children[1].Children[1]
	varItem := varDecl.Children[1]
	arrayType := varItem.Children[2].Children[0]
	if arrayType.Kind != parsetree.KindArrayType {
		t.Fatalf("expected array type, got %s", arrayType.Kind)
	}
}

func TestParseIfWithElse(t *testing.T) {
	tree := parseSource(t, "program p; variabel x: integer; mulai jika x=1 maka x:=2 selainitu x:=3 selesai.")
	compound := tree.Children[2]
	ifStmt := compound.Children[1].Children[0].Children[0]
	if ifStmt.Kind != parsetree.KindIf {
		t.Fatalf("expected if statement, got %s", ifStmt.Kind)
	}
	if len(ifStmt.Children) != 6 {
		t.Fatalf("expected if-then-else to have 6 children (jika,expr,maka,stmt,selainitu,stmt), got %d", len(ifStmt.Children))
	}
}

func TestParseSyntaxErrorStopsWithSingleDiagnostic(t *testing.T) {
	toks, _ := lexer.Tokenize("program p mulai selesai.")
	_, diags := Parse(toks)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one syntax diagnostic, got %d: %v", len(diags), diags)
	}
}

func TestParseProcedureWithParameters(t *testing.T) {
	tree := parseSource(t, "program p; prosedur q(a:integer); mulai selesai; mulai q(1,2) selesai.")
	subDecl := tree.Children[1].Children[0]
	procDecl := subDecl.Children[0]
	if procDecl.Kind != parsetree.KindProcedureDecl {
		t.Fatalf("expected procedure decl, got %s", procDecl.Kind)
	}
}
