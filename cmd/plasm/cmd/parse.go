package cmd

import (
	"fmt"
	"os"

	"github.com/lehlud/plasm/internal/diagnostics"
	"github.com/lehlud/plasm/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a plasm source file and print the resulting AST",
	Long: `Parse plasm source code and print the Program's AST.

If no file is given, reads from stdin. -e parses an inline expression
or statement list instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	p := parser.New(input)
	program := p.ParseProgram()

	if diags := p.Errors(); len(diags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(diags, input))
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(diags))
	}

	fmt.Println(program.String())
	return nil
}
