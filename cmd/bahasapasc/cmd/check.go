package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/bahasapas-lang/bahasapasc/internal/config"
	"github.com/bahasapas-lang/bahasapasc/internal/diagnostics"
	"github.com/bahasapas-lang/bahasapasc/internal/export"
	"github.com/bahasapas-lang/bahasapasc/internal/lexer"
	"github.com/bahasapas-lang/bahasapasc/internal/parser"
	"github.com/bahasapas-lang/bahasapasc/internal/semantic"
)

var (
	checkEvalExpr string
	outputFormat  string
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Lex, parse and semantically analyze a program",
	Long: `Run the full pipeline over a program: tokenize, parse and
semantically analyze it, then report every diagnostic found. With
--format json, print the decorated program and its symbol table as
JSON instead of a diagnostic summary.

Examples:
  bahasapasc check program.pas
  bahasapasc check --format json program.pas
  bahasapasc check -e "program p; mulai selesai."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkEvalExpr, "eval", "e", "", "analyze inline code instead of reading from file")
	checkCmd.Flags().StringVar(&outputFormat, "format", "", `output format, "text" or "json" (default from config, else "text")`)
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(checkEvalExpr, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	color := cfg.Color && !noColor
	format := outputFormat
	if format == "" {
		format = cfg.OutputFormat
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Analyzing: %s\n", filename)
	}

	tokens, lexDiags := lexer.Tokenize(input)
	tree, parseDiags := parser.Parse(tokens)

	allDiags := append([]diagnostics.Diagnostic{}, lexDiags...)
	allDiags = append(allDiags, parseDiags...)

	if diagnostics.HasFatal(parseDiags) || tree == nil {
		printDiagnostics(allDiags, input, color)
		return exitStatus(allDiags, cfg)
	}

	prog, table, semDiags := semantic.Analyze(tree)
	allDiags = append(allDiags, semDiags...)

	if verbose {
		fmt.Printf("%# v\n", pretty.Formatter(prog))
		fmt.Printf("%# v\n", pretty.Formatter(table))
	}

	if format == "json" {
		doc, err := export.Program(prog, table)
		if err != nil {
			return fmt.Errorf("failed to export program: %w", err)
		}
		fmt.Println(doc)
	} else {
		printDiagnostics(allDiags, input, color)
		if len(allDiags) == 0 {
			fmt.Println("no diagnostics")
		}
	}

	return exitStatus(allDiags, cfg)
}

func printDiagnostics(diags []diagnostics.Diagnostic, source string, color bool) {
	if out := diagnostics.FormatAll(diags, source, color); out != "" {
		fmt.Println(out)
	}
}

func severityName(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SevWarning:
		return "warning"
	case diagnostics.SevSyntax:
		return "syntax"
	case diagnostics.SevSemantic:
		return "semantic"
	default:
		return "diagnostic"
	}
}

func exitStatus(diags []diagnostics.Diagnostic, cfg config.Config) error {
	for _, d := range diags {
		if cfg.IsFatal(severityName(d.Severity)) {
			return fmt.Errorf("%d diagnostic(s) found", len(diags))
		}
	}
	return nil
}
