package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lehlud/plasm/internal/diagnostics"
	"github.com/lehlud/plasm/internal/irbuilder"
	"github.com/lehlud/plasm/internal/parser"
	"github.com/lehlud/plasm/internal/passes"
	"github.com/lehlud/plasm/internal/semantic"
	"github.com/lehlud/plasm/internal/wat"
	"github.com/spf13/cobra"
)

var buildAssemble bool

var buildCmd = &cobra.Command{
	Use:   "build <src> [out]",
	Short: "Compile a plasm source file to WebAssembly text format",
	Long: `Compile plasm source through the full pipeline (lexer, parser, name
and type analysis, IR builder, WAT generator) and write the result as
a .wat file.

Default out is src with its extension replaced by .wat. With
--assemble, also invokes the external wat2wasm assembler to produce a
.wasm binary alongside it (the assembler itself is out of scope for
this compiler; it's just shelled out to).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildAssemble, "assemble", false, "also invoke wat2wasm on the generated .wat")
}

func runBuild(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	src := args[0]
	out := ""
	if len(args) == 2 {
		out = args[1]
	}

	text, err := compileToWAT(src, verbose)
	if err != nil {
		return err
	}

	if out == "" {
		ext := filepath.Ext(src)
		out = strings.TrimSuffix(src, ext) + ".wat"
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", out, err)
	}
	fmt.Printf("Compiled %s -> %s\n", src, out)

	if buildAssemble {
		wasmOut := strings.TrimSuffix(out, filepath.Ext(out)) + ".wasm"
		c := exec.Command("wat2wasm", out, "-o", wasmOut)
		c.Stdout, c.Stderr = os.Stdout, os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("wat2wasm failed: %w", err)
		}
		fmt.Printf("Assembled %s -> %s\n", out, wasmOut)
	}
	return nil
}

// compileToWAT runs the full pipeline over filename's contents and
// returns the generated WAT text, or the first phase's diagnostics
// formatted against source, already printed to stderr.
func compileToWAT(filename string, verbose bool) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	p := parser.New(source)
	program := p.ParseProgram()
	if diags := p.Errors(); len(diags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(diags, source))
		return "", fmt.Errorf("parsing failed with %d error(s)", len(diags))
	}

	info, diags := semantic.Analyze(program)
	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(diags, source))
		return "", fmt.Errorf("semantic analysis failed with %d error(s)", len(diags))
	}

	module := irbuilder.Build(program, info)

	mgr := passes.NewManager(passes.UnreachableBlocks{}, passes.DeadCodeElimination{}, passes.ConstantFolding{})
	if fired := mgr.Run(module); verbose && len(fired) > 0 {
		fmt.Fprintf(os.Stderr, "Passes applied: %s\n", strings.Join(fired, ", "))
	}

	text := wat.Generate(module)
	if verbose {
		fmt.Fprintln(os.Stderr, "--- WAT ---")
		fmt.Fprint(os.Stderr, text)
	}
	return text, nil
}
