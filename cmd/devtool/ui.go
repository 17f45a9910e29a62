package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// out is swapped in tests to capture command output
var out io.Writer = os.Stdout

func printStatus(color, symbol, format string, a ...interface{}) {
	fmt.Fprintf(out, "%s%s %s%s\n", color, symbol, fmt.Sprintf(format, a...), colorReset)
}

func PrintInfo(format string, a ...interface{})    { printStatus(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { printStatus(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { printStatus(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { printStatus(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Fprintf(out, "\n%s=== %s ===%s\n", colorYellow, title, colorReset)
}
