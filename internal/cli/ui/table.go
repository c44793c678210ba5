package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a table with consistent styling.
func NewTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)
	// lipgloss.Width handles ANSI escape codes when sizing columns
	tbl.WithWidthFunc(lipgloss.Width)

	return tbl
}
