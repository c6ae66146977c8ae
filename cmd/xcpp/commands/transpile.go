package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xcpp/internal/config"
	"xcpp/internal/driver"
)

var (
	transpileInput  string
	transpileOutput string
	transpileSource string
	configPath      string
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [file.ast]",
	Short: "Transpile one AST dump to C",
	Long: `Transpile a single translation unit to C.

The input is the front-end's AST dump. When the matching source file is
present (same path with a .cpp extension, or --source), method bodies are
carried over; otherwise stub bodies are generated.

Examples:
  xcpp transpile main.ast                   # Output to stdout
  xcpp transpile -i main.ast -o main.c      # Output to file
  xcpp -i main.ast -o main.c                # Shorthand (same as transpile)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspile,
}

func init() {
	transpileCmd.Flags().StringVarP(&transpileInput, "input", "i", "", "Path to the input .ast dump")
	transpileCmd.Flags().StringVarP(&transpileOutput, "output", "o", "", "Path to the output .c file")
	transpileCmd.Flags().StringVarP(&transpileSource, "source", "s", "", "Path to the original source file")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	inputPath := transpileInput
	if inputPath == "" && len(args) > 0 {
		inputPath = args[0]
	}
	if inputPath == "" {
		return fmt.Errorf("no input file specified\nUsage: xcpp transpile [file.ast] or xcpp -i file.ast")
	}

	cfg, err := config.LoadIfPresent(configPath)
	if err != nil {
		return err
	}

	unit, err := loadUnit(inputPath, transpileSource)
	if err != nil {
		return err
	}

	pipeline, diags := driver.NewPipeline(cfg)
	out, err := pipeline.Transpile(unit.Dump, unit.Source)
	renderDiagnostics(os.Stderr, unit.Name, diags.Items())
	if err != nil {
		return fmt.Errorf("transpilation failed: %w", err)
	}

	if transpileOutput != "" {
		if err := os.WriteFile(transpileOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Generated C code saved to %s\n", transpileOutput)
	} else {
		fmt.Print(out)
	}

	if diags.HasFatal() {
		os.Exit(1)
	}
	return nil
}

// loadUnit reads a dump file and, when available, the matching source file.
// The source defaults to the dump path with a .cpp extension.
func loadUnit(dumpPath, sourcePath string) (driver.UnitInput, error) {
	dump, err := os.ReadFile(dumpPath)
	if err != nil {
		return driver.UnitInput{}, fmt.Errorf("failed to read input file: %w", err)
	}

	if sourcePath == "" {
		sourcePath = strings.TrimSuffix(dumpPath, ".ast") + ".cpp"
	}
	source := ""
	if content, err := os.ReadFile(sourcePath); err == nil {
		source = string(content)
	}

	return driver.UnitInput{
		Name:   dumpPath,
		Dump:   string(dump),
		Source: source,
	}, nil
}
