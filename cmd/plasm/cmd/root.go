// Package cmd implements plasm's command-line driver: the external,
// out-of-scope collaborator spec.md SS1/SS6 describe, consumed only
// through the pipeline's narrow lexer/parser/semantic/irbuilder/wat
// entry points.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "plasm",
	Short: "plasm compiler: statically-typed source to WebAssembly GC",
	Long: `plasm compiles a small statically-typed imperative language to
WebAssembly text format (WAT) targeting the GC and typed
function-references proposals.

Pipeline: lexer -> parser -> name analysis -> type analysis ->
IR builder -> WAT generator. Each phase accumulates diagnostics rather
than aborting on first error, except for a fatal parse desync.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "dump per-phase diagnostics and IR/WAT")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
