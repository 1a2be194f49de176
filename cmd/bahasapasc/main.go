// Command bahasapasc tokenizes, parses and semantically analyzes a
// source file written in the Indonesian-keyword Pascal-like language
// this module implements, printing diagnostics, tokens, the parse tree,
// the decorated AST and the symbol table.
package main

import (
	"fmt"
	"os"

	"github.com/bahasapas-lang/bahasapasc/cmd/bahasapasc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
