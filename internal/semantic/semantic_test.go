package semantic

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/bahasapas-lang/bahasapasc/internal/ast"
	"github.com/bahasapas-lang/bahasapasc/internal/lexer"
	"github.com/bahasapas-lang/bahasapasc/internal/parser"
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
)

func mustAnalyze(t *testing.T, src string) (*ast.Program, *symboltable.Table, []string) {
	t.Helper()
	toks, lexDiags := lexer.Tokenize(src)
	if len(lexDiags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags)
	}
	tree, parseDiags := parser.Parse(toks)
	if len(parseDiags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parseDiags)
	}
	prog, table, diags := Analyze(tree)
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	return prog, table, msgs
}

func TestAnalyzeMinimalProgram(t *testing.T) {
	prog, _, diags := mustAnalyze(t, "program p; mulai selesai.")
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", diags)
	}
	if prog.Name != "p" {
		t.Errorf("Name = %q", prog.Name)
	}
	if len(prog.Body.Statements) != 0 {
		t.Errorf("expected empty body, got %d statements", len(prog.Body.Statements))
	}
}

func TestAnalyzeVariableDeclarationsAndAssignment(t *testing.T) {
	_, table, diags := mustAnalyze(t, "program p; variabel x,y: integer; mulai x:=1; y:=x+2 selesai.")
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", diags)
	}
	xIdx := table.FindIdentifier("x")
	yIdx := table.FindIdentifier("y")
	if xIdx != table.UserIDStart || yIdx != table.UserIDStart+1 {
		t.Fatalf("expected x,y at tab[%d..%d], got %d,%d", table.UserIDStart, table.UserIDStart+1, xIdx, yIdx)
	}
	x := table.Entry(xIdx)
	y := table.Entry(yIdx)
	if x.Obj != symboltable.ObjVariable || x.Type != symboltable.Integer || x.Lev != 0 || x.Adr != 0 {
		t.Errorf("x entry = %# v", pretty.Formatter(x))
	}
	if y.Obj != symboltable.ObjVariable || y.Type != symboltable.Integer || y.Lev != 0 || y.Adr != 1 {
		t.Errorf("y entry = %# v", pretty.Formatter(y))
	}
}

func TestAnalyzeArrayDeclaration(t *testing.T) {
	_, table, diags := mustAnalyze(t,
		"program p; konstanta n=5; variabel a: larik[1..n] dari integer; mulai selesai.")
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", diags)
	}
	if len(table.Atab) != 1 {
		t.Fatalf("expected exactly one atab entry, got %d", len(table.Atab))
	}
	arr := table.Atab[0]
	if arr.Low != 1 || arr.High != 5 || arr.ElementSize != 1 || arr.Size != 5 {
		t.Errorf("atab[0] = %# v", pretty.Formatter(arr))
	}
}

func TestAnalyzeTypeMismatchInAssignment(t *testing.T) {
	_, _, diags := mustAnalyze(t, "program p; variabel x: integer; mulai x:=3.14 selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(diags), diags)
	}
	want := "Type mismatch in assignment: cannot assign REAL to INTEGER"
	if diags[0] != want {
		t.Errorf("got %q, want %q", diags[0], want)
	}
}

func TestAnalyzeAssignToConstant(t *testing.T) {
	_, _, diags := mustAnalyze(t, "program p; konstanta c=1; mulai c:=2 selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(diags), diags)
	}
	want := "Cannot assign to constant 'c'"
	if diags[0] != want {
		t.Errorf("got %q, want %q", diags[0], want)
	}
}

func TestAnalyzeParameterCountMismatch(t *testing.T) {
	_, _, diags := mustAnalyze(t,
		"program p; prosedur q(a:integer); mulai selesai; mulai q(1,2) selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(diags), diags)
	}
	want := "Parameter count mismatch in q: expected 1, got 2"
	if diags[0] != want {
		t.Errorf("got %q, want %q", diags[0], want)
	}
}

func TestAnalyzeReservedPrefixHasTwentyNineEntries(t *testing.T) {
	_, table, _ := mustAnalyze(t, "program p; mulai selesai.")
	if table.UserIDStart != 29 {
		t.Errorf("UserIDStart = %d, want 29", table.UserIDStart)
	}
}

func TestAnalyzeIfWhileForRepeatCase(t *testing.T) {
	_, _, diags := mustAnalyze(t, `program p;
variabel x: integer;
mulai
  jika x>0 maka x:=1 selainitu x:=2;
  selama x<10 lakukan x:=x+1;
  untuk x:=1 ke 10 lakukan x:=x+1;
  ulangi x:=x+1 sampai x>5;
  kasus x dari 1: x:=1 2: x:=2 selesai
selesai.`)
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", diags)
	}
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	_, _, diags := mustAnalyze(t, "program p; mulai x:=1 selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(diags), diags)
	}
}

func TestAnalyzeUndeclaredIdentifierInAssignmentDoesNotDoubleReport(t *testing.T) {
	_, _, diags := mustAnalyze(t, "program p; variabel x: integer; mulai x:=y selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error (undeclared y), got %d: %v", len(diags), diags)
	}
}

func TestAnalyzeCharAssignableToString(t *testing.T) {
	_, _, diags := mustAnalyze(t, "program p; variabel s: string; mulai s:='c' selesai.")
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", diags)
	}
}

func TestAnalyzeDuplicateVariable(t *testing.T) {
	_, _, diags := mustAnalyze(t, "program p; variabel x,x: integer; mulai selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(diags), diags)
	}
	want := "Duplicate identifier 'x'"
	if diags[0] != want {
		t.Errorf("got %q, want %q", diags[0], want)
	}
}

func TestAnalyzeShadowingInNestedBlockIsNotADuplicate(t *testing.T) {
	_, _, diags := mustAnalyze(t, `program p;
variabel x: integer;
prosedur q;
variabel x: integer;
mulai x:=1 selesai;
mulai q selesai.`)
	if len(diags) != 0 {
		t.Fatalf("expected zero errors (nested x shadows outer x), got %v", diags)
	}
}

func TestAnalyzeInvalidArrayBounds(t *testing.T) {
	_, _, diags := mustAnalyze(t,
		"program p; variabel a: larik[10..1] dari integer; mulai selesai.")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(diags), diags)
	}
	want := "Invalid array bounds: 10..1 (lower bound > upper bound)"
	if diags[0] != want {
		t.Errorf("got %q, want %q", diags[0], want)
	}
}
