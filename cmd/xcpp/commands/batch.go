package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"xcpp/internal/config"
	"xcpp/internal/driver"
	"xcpp/xcpperr"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Transpile every AST dump in a directory",
	Long: `Walk a directory, transpile every .ast dump found, and write the
generated .c file next to each dump. Units are processed in parallel; the
worker count comes from the config file (jobs).

Exit status is non-zero if any unit recorded a fatal diagnostic.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadIfPresent(configPath)
	if err != nil {
		return err
	}

	paths, err := listDumpFiles(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No .ast dumps found in %s\n", args[0])
		return nil
	}

	units := make([]driver.UnitInput, 0, len(paths))
	for _, p := range paths {
		unit, err := loadUnit(p, "")
		if err != nil {
			return err
		}
		units = append(units, unit)
	}

	results := driver.ProcessUnits(context.Background(), cfg, units)
	var unitErrs []error
	for _, r := range results {
		renderDiagnostics(os.Stderr, r.Name, r.Diags)
		if r.Err != nil {
			unitErrs = append(unitErrs, r.Err)
			continue
		}
		outPath := strings.TrimSuffix(r.Name, ".ast") + ".c"
		if err := os.WriteFile(outPath, []byte(r.Output), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Printf("Generated %s\n", outPath)
	}

	if len(unitErrs) > 0 {
		return &xcpperr.MultiError{Errors: unitErrs}
	}
	if driver.AnyFatal(results) {
		os.Exit(1)
	}
	return nil
}

// listDumpFiles returns the sorted list of .ast files under dir. Sorting
// keeps unit and diagnostic order deterministic across runs.
func listDumpFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ast") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
