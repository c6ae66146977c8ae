package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"xcpp/internal/diag"
)

var (
	warnColor  = color.New(color.FgYellow)
	fatalColor = color.New(color.FgRed, color.Bold)
)

// renderDiagnostics prints the unit's diagnostics in recorded order,
// warnings in yellow and fatals in red.
func renderDiagnostics(w io.Writer, unit string, diags []diag.Diagnostic) {
	for _, d := range diags {
		c := warnColor
		if d.Severity == diag.SeverityFatal {
			c = fatalColor
		}
		fmt.Fprintf(w, "%s: %s\n", unit, c.Sprint(d.String()))
	}
}
