package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mathscript",
	Short: "MathScript to Lua compiler",
	Long: `mathscript compiles MathScript source into Lua 5.1/5.2-compatible code.

MathScript is a curly-brace language combining JavaScript-like surface
syntax with first-class mathematical Unicode (π, ℯ, φ, ×, ÷, √, ², ³,
≤, ≥, ≠, ∈, ∪, ∩, →, λ, ...) and a mathematical function shorthand
f(x) = expr;.

The compiler is a pure source-to-source front end: it does not execute
programs or type-check them. Generated Lua depends on a small runtime
helper table (_LS) providing JavaScript-style array methods.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
