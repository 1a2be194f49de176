package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bahasapas-lang/bahasapasc/internal/lexer"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or inline expression",
	Long: `Tokenize a program and print the resulting tokens.

Examples:
  bahasapasc lex program.pas
  bahasapasc lex -e "variabel x: integer; mulai x := 1 selesai."
  bahasapasc lex --show-type --show-pos program.pas
  bahasapasc lex --only-errors program.pas`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	tokens, diags := lexer.Tokenize(input)

	errorCount := 0
	for _, tok := range tokens {
		if onlyErrors && tok.Kind != token.UNKNOWN {
			continue
		}
		printToken(tok)
	}
	for _, d := range diags {
		errorCount++
		fmt.Println(d.String())
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(tokens))
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d diagnostic(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-20s]", tok.Kind.String())
	}
	if tok.Lexeme == "" {
		output += fmt.Sprintf(" %s", tok.Kind.String())
	} else {
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos.String())
	}
	fmt.Println(output)
}
