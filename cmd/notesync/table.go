package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Faint(true)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableMarkStyle   = tableCellStyle.Bold(true)
)

// printTable renders rows under headers. Rows for which marked returns true
// are drawn in bold; marked may be nil.
func printTable(w io.Writer, headers []string, rows [][]string, marked func(row int) bool) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case marked != nil && marked(row):
				return tableMarkStyle
			default:
				return tableCellStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
