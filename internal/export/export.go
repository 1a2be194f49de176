// Package export serializes a decorated ast.Program and its
// symboltable.Table to JSON, for the CLI's `check --format json` output
// mode.
//
// It builds the document incrementally with tidwall/sjson rather than
// round-tripping through encoding/json struct tags, since the decorated
// tree is a closed set of interface-typed nodes (ast.Statement,
// ast.Expression) that would otherwise need custom MarshalJSON methods
// on every variant; sjson lets each node contribute its own small JSON
// fragment by path instead.
package export

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/bahasapas-lang/bahasapasc/internal/ast"
	"github.com/bahasapas-lang/bahasapasc/internal/symboltable"
)

// Program renders prog and table as an indented JSON document.
func Program(prog *ast.Program, table *symboltable.Table) (string, error) {
	doc := "{}"
	var err error

	if doc, err = sjson.Set(doc, "program.name", prog.Name); err != nil {
		return "", err
	}
	if doc, err = setConsts(doc, "program.consts", prog.Consts); err != nil {
		return "", err
	}
	if doc, err = setVars(doc, "program.vars", prog.Vars); err != nil {
		return "", err
	}
	if doc, err = setSubs(doc, "program.subprograms", prog.Subs); err != nil {
		return "", err
	}
	if doc, err = setStatements(doc, "program.body", prog.Body.Statements); err != nil {
		return "", err
	}
	if doc, err = setSymbolTable(doc, "symbolTable", table); err != nil {
		return "", err
	}

	return string(pretty.Pretty([]byte(doc))), nil
}

func setConsts(doc, path string, consts []*ast.ConstDecl) (string, error) {
	var err error
	for i, c := range consts {
		base := fmt.Sprintf("%s.%d", path, i)
		if doc, err = sjson.Set(doc, base+".name", c.Name); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".type", c.ValType.String()); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".value", fmt.Sprintf("%v", c.Value)); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setVars(doc, path string, vars []*ast.VarDecl) (string, error) {
	var err error
	for i, v := range vars {
		base := fmt.Sprintf("%s.%d", path, i)
		if doc, err = sjson.Set(doc, base+".name", v.Name); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".type", v.ValType.String()); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".tabIndex", v.TabIndex); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setSubs(doc, path string, subs []*ast.SubprogramDecl) (string, error) {
	var err error
	for i, s := range subs {
		base := fmt.Sprintf("%s.%d", path, i)
		kind := "procedure"
		if s.IsFunction {
			kind = "function"
		}
		if doc, err = sjson.Set(doc, base+".kind", kind); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".name", s.Name); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".returnType", s.ReturnType.String()); err != nil {
			return "", err
		}
		for j, p := range s.Params {
			pbase := fmt.Sprintf("%s.params.%d", base, j)
			if doc, err = sjson.Set(doc, pbase+".name", p.Name); err != nil {
				return "", err
			}
			if doc, err = sjson.Set(doc, pbase+".type", p.ValType.String()); err != nil {
				return "", err
			}
		}
		if doc, err = setStatements(doc, base+".body", s.Body.Statements); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setStatements(doc, path string, stmts []ast.Statement) (string, error) {
	var err error
	for i, s := range stmts {
		base := fmt.Sprintf("%s.%d", path, i)
		doc, err = setStatement(doc, base, s)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setStatement(doc, base string, s ast.Statement) (string, error) {
	var err error
	switch v := s.(type) {
	case *ast.Assignment:
		if doc, err = sjson.Set(doc, base+".kind", "assignment"); err != nil {
			return "", err
		}
		return sjson.Set(doc, base+".target", v.Target.Name)
	case *ast.ProcedureCall:
		if doc, err = sjson.Set(doc, base+".kind", "call"); err != nil {
			return "", err
		}
		return sjson.Set(doc, base+".name", v.Name)
	case *ast.IfStatement:
		return sjson.Set(doc, base+".kind", "if")
	case *ast.WhileStatement:
		return sjson.Set(doc, base+".kind", "while")
	case *ast.ForStatement:
		return sjson.Set(doc, base+".kind", "for")
	case *ast.RepeatStatement:
		return sjson.Set(doc, base+".kind", "repeat")
	case *ast.CaseStatement:
		return sjson.Set(doc, base+".kind", "case")
	case *ast.Compound:
		if doc, err = sjson.Set(doc, base+".kind", "compound"); err != nil {
			return "", err
		}
		return setStatements(doc, base+".statements", v.Statements)
	default:
		return sjson.Set(doc, base+".kind", "unknown")
	}
}

func setSymbolTable(doc, path string, table *symboltable.Table) (string, error) {
	var err error
	for i := table.UserIDStart; i < len(table.Tab); i++ {
		entry := table.Entry(i)
		if entry == nil {
			continue
		}
		base := fmt.Sprintf("%s.tab.%d", path, i)
		if doc, err = sjson.Set(doc, base+".name", entry.Name); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".obj", entry.Obj.String()); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".type", entry.Type.String()); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".lev", entry.Lev); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".adr", entry.Adr); err != nil {
			return "", err
		}
	}
	for i, arr := range table.Atab {
		base := fmt.Sprintf("%s.atab.%d", path, i)
		if doc, err = sjson.Set(doc, base+".low", arr.Low); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".high", arr.High); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".elementSize", arr.ElementSize); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+".size", arr.Size); err != nil {
			return "", err
		}
	}
	return doc, nil
}
