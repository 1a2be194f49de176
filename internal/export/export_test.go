package export

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tidwall/gjson"

	"github.com/bahasapas-lang/bahasapasc/internal/lexer"
	"github.com/bahasapas-lang/bahasapasc/internal/parser"
	"github.com/bahasapas-lang/bahasapasc/internal/semantic"
)

func TestProgramExportsNameAndVars(t *testing.T) {
	src := "program p; variabel x,y: integer; mulai x:=1; y:=x+2 selesai."
	toks, _ := lexer.Tokenize(src)
	tree, diags := parser.Parse(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	prog, table, semDiags := semantic.Analyze(tree)
	if len(semDiags) != 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", semDiags)
	}

	doc, err := Program(prog, table)
	if err != nil {
		t.Fatalf("Program() error: %v", err)
	}

	if name := gjson.Get(doc, "program.name").String(); name != "p" {
		t.Errorf("program.name = %q", name)
	}
	if n := gjson.Get(doc, "program.vars.#").Int(); n != 2 {
		t.Errorf("program.vars count = %d, want 2", n)
	}
	if typ := gjson.Get(doc, "program.vars.0.type").String(); typ != "INTEGER" {
		t.Errorf("program.vars.0.type = %q", typ)
	}
}

func TestProgramExportShapeSnapshot(t *testing.T) {
	src := `program contoh;
variabel i, total: integer;
variabel nilai: larik [1..5] dari integer;

fungsi ganda(n: integer): integer;
mulai
  ganda := n * 2
selesai;

mulai
  total := 0;
  untuk i := 1 ke 5 lakukan
    nilai[i] := ganda(i);
  total := total + i
selesai.`
	toks, _ := lexer.Tokenize(src)
	tree, diags := parser.Parse(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	prog, table, semDiags := semantic.Analyze(tree)
	if len(semDiags) != 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", semDiags)
	}

	doc, err := Program(prog, table)
	if err != nil {
		t.Fatalf("Program() error: %v", err)
	}

	snaps.MatchSnapshot(t, doc)
}
