// Package output provides terminal output formatting for the fwrelease CLI.
// It has no dependencies on other internal packages.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Separator returns a line of width runes with label centered in it.
func Separator(label string, width int) string {
	label = " " + label + " "
	n := (width - len([]rune(label))) / 2
	if n < 3 {
		n = 3
	}
	line := strings.Repeat("─", n)
	return line + label + line
}

// PrintRunSeparator prints a dim separator labelled with label, e.g. before every
// regeneration in watch mode.
func PrintRunSeparator(out io.Writer, label string) {
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", magenta(Separator(label, GetTerminalWidth())))
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}
