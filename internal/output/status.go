package output

import (
	"fmt"

	"github.com/fatih/color"
)

// Colored terminal status lines, in the style of the shell tools this
// replaces. color honors NO_COLOR and non-TTY output on its own.
var (
	infoTag = color.New(color.FgCyan).SprintFunc()
	okTag   = color.New(color.FgGreen).SprintFunc()
	failTag = color.New(color.FgRed).SprintFunc()
	warnTag = color.New(color.FgYellow).SprintFunc()
)

// Infof prints an informational status line.
func Infof(format string, args ...any) {
	fmt.Printf("%s %s\n", infoTag("[*]"), fmt.Sprintf(format, args...))
}

// Okf prints a success status line.
func Okf(format string, args ...any) {
	fmt.Printf("%s %s\n", okTag("[ok]"), fmt.Sprintf(format, args...))
}

// Failf prints a failure status line.
func Failf(format string, args ...any) {
	fmt.Printf("%s %s\n", failTag("[fail]"), fmt.Sprintf(format, args...))
}

// Warnf prints a warning status line.
func Warnf(format string, args ...any) {
	fmt.Printf("%s %s\n", warnTag("[warn]"), fmt.Sprintf(format, args...))
}
