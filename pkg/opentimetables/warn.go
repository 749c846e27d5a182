package opentimetables

import (
	"io"

	"github.com/fatih/color"
)

var (
	warnColor = color.New(color.FgRed)

	// Where warnings are written. Defaults to the colour-capable standard
	// output stream.
	warnOutput io.Writer = color.Output
)

// Prints a non-fatal warning in red. Warnings mark items that were skipped;
// they never stop a run.
func Warnf(format string, a ...any) {
	warnColor.Fprintf(warnOutput, format+"\n", a...)
}
