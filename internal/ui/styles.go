// Package ui holds the terminal styles used by command summaries.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/taigrr/colorhash"
)

var (
	successColor = lipgloss.Color("42")  // Green
	errorColor   = lipgloss.Color("160") // Red
	subtleColor  = lipgloss.Color("241") // Grey

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	successBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(successColor).
			Padding(0, 1).
			Bold(true).
			SetString("OK")

	errorBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(errorColor).
			Padding(0, 1).
			Bold(true).
			SetString("FAIL")

	subtleStyle = lipgloss.NewStyle().Foreground(subtleColor)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// SiteColor returns a stable 256-color code for name, so a site keeps the
// same color across runs. Codes 0-15 and the grey ramp are avoided.
func SiteColor(name string) lipgloss.Color {
	h := colorhash.HashString(name)
	if h < 0 {
		h = -h
	}
	return lipgloss.Color(fmt.Sprintf("%d", 16+h%216))
}

func Subtle(s string) string {
	return subtleStyle.Render(s)
}

// Success writes a success line to w.
func Success(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", successBadge.String(), fmt.Sprintf(format, a...))
}

// Failure writes a failure line to w.
func Failure(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", errorBadge.String(), fmt.Sprintf(format, a...))
}

// Table renders header and rows with the site in the first column of each
// row colored by SiteColor. Cells are passed unstyled.
func Table(header []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := cellStyle
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(headerStyle)
			case col == 0 && row < len(rows) && len(rows[row]) > 0:
				return cell.Foreground(SiteColor(rows[row][0])).Bold(true)
			case col > 0:
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	return t.String() + "\n"
}
