// Package commands provides the CLI commands for the xcpp tool.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xcpp [file.ast]",
	Short: "C++ subset to C transpiler",
	Long: `xcpp translates a constrained subset of C++ into plain C: classes
become structs, methods become free functions taking an explicit instance
pointer, constructors and destructors become init/cleanup pairs, and single
inheritance becomes an embedded base struct.

The C++ front-end is external: xcpp consumes its AST dump (clang -ast-dump
text) and optionally the original source for method bodies.

Usage:
  xcpp [file.ast]                 Transpile a dump (shorthand)
  xcpp transpile -i f.ast -o f.c  Transpile with explicit input/output
  xcpp batch ./src                Transpile every dump in a directory
  xcpp check f.ast                Report diagnostics without emitting
  xcpp version                    Print version`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transpileInput != "" {
			return runTranspile(cmd, args)
		}
		if len(args) > 0 && strings.HasSuffix(args[0], ".ast") {
			return runTranspile(cmd, args)
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command %q for \"xcpp\"\nRun 'xcpp --help' for usage", args[0])
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Mirror transpile flags on the root for the shorthand form.
	rootCmd.Flags().StringVarP(&transpileInput, "input", "i", "", "Path to the input .ast dump")
	rootCmd.Flags().StringVarP(&transpileOutput, "output", "o", "", "Path to the output .c file")
	rootCmd.Flags().StringVarP(&transpileSource, "source", "s", "", "Path to the original source file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "xcpp.toml", "Path to the config file")
}
