package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xcpp/internal/config"
	"xcpp/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.ast]",
	Short: "Run the pipeline and report diagnostics without emitting",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadIfPresent(configPath)
	if err != nil {
		return err
	}

	unit, err := loadUnit(args[0], transpileSource)
	if err != nil {
		return err
	}

	pipeline, diags := driver.NewPipeline(cfg)
	_, terr := pipeline.Transpile(unit.Dump, unit.Source)
	renderDiagnostics(os.Stdout, unit.Name, diags.Items())

	if terr != nil {
		return fmt.Errorf("unit aborted: %w", terr)
	}
	if diags.Len() == 0 {
		fmt.Printf("%s: no issues found\n", unit.Name)
	}
	if diags.HasFatal() {
		os.Exit(1)
	}
	return nil
}
