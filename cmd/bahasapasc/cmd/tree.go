package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bahasapas-lang/bahasapasc/internal/diagnostics"
	"github.com/bahasapas-lang/bahasapasc/internal/lexer"
	"github.com/bahasapas-lang/bahasapasc/internal/parser"
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
)

var treeEvalExpr string

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Parse a program and dump its parse tree",
	Long: `Parse a program and print the raw parse tree produced by the
parser, before semantic analysis decorates it.

Examples:
  bahasapasc tree program.pas
  bahasapasc tree -e "program p; mulai selesai."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVarP(&treeEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runTree(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(treeEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, lexDiags := lexer.Tokenize(input)
	tree, parseDiags := parser.Parse(tokens)

	if diagnostics.HasFatal(parseDiags) || tree == nil {
		for _, d := range append(lexDiags, parseDiags...) {
			fmt.Println(d.String())
		}
		return fmt.Errorf("parsing failed")
	}

	dumpNode(tree, 0)
	return nil
}

func dumpNode(n *parsetree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Printf("%s%s %q\n", indent, n.Kind, n.Token.Lexeme)
		return
	}
	fmt.Printf("%s%s\n", indent, n.Kind)
	for _, child := range n.Children {
		dumpNode(child, depth+1)
	}
}
