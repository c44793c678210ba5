package ui

import (
	"fmt"
	"os"
)

// Error prints an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a success message.
func Success(format string, args ...interface{}) {
	fmt.Printf("✓ %s\n", SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints an informational message.
func Info(format string, args ...interface{}) {
	fmt.Printf("%s\n", InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning message.
func Warning(format string, args ...interface{}) {
	fmt.Printf("! %s\n", WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header.
func Section(title string) {
	fmt.Printf("\n%s\n", HeaderStyle.Render(title))
}
