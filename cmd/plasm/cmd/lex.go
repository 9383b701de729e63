package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lehlud/plasm/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval   string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a plasm source file and print the resulting tokens",
	Long: `Tokenize a plasm program and print the resulting tokens, one per
line, useful for debugging the lexer.

Examples:
  plasm lex script.plasm
  plasm lex -e "let x: i32 = 1;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", true, "show token positions (line:column)")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	count := 0
	for {
		tok := l.NextToken()
		count++
		if lexShowPos {
			fmt.Println(tok.String())
		} else {
			fmt.Printf("%s(%q)\n", tok.Type, tok.Literal)
		}
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", e.Pos, e.Message)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "%d tokens\n", count)
	}
	return nil
}

// readSource resolves plasm's three ways of supplying program text: an
// inline -e/--eval string, a file path argument, or stdin when neither
// is given.
func readSource(eval string, args []string) (input, filename string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("no file given and failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}
