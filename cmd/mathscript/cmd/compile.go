package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mekotech/mathscript/pkg/mathscript"
	"github.com/spf13/cobra"
)

var (
	outputFile     string
	toStdout       bool
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a MathScript file to Lua",
	Long: `Compile a MathScript program into Lua 5.1/5.2-compatible source code.

Examples:
  # Compile a script, writing alongside it as script.lua
  mathscript compile script.ls

  # Compile with a custom output file
  mathscript compile script.ls -o out.lua

  # Compile and print the result to stdout instead of writing a file
  mathscript compile script.ls --stdout`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.lua)")
	compileCmd.Flags().BoolVar(&toStdout, "stdout", false, "print generated Lua to stdout instead of writing a file")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	lua, err := mathscript.Compile(input, filename)
	if err != nil {
		exitWithError("%v", err)
		return err
	}

	if toStdout {
		fmt.Print(lua)
		return nil
	}

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".lua"
		} else {
			outFile = filename + ".lua"
		}
	}

	if err := os.WriteFile(outFile, []byte(lua), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Lua written to %s (%d bytes)\n", outFile, len(lua))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}

	return nil
}
