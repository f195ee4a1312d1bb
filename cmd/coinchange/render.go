package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/on-the-ground/coinchange/solver"
	"github.com/on-the-ground/coinchange/tabulated"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	coinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)

	baseStyle = cellStyle.
			Foreground(lipgloss.Color("#666666"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))
)

func renderTable(w io.Writer, t tabulated.Table, styled bool) error {
	if !styled {
		return t.Format(w)
	}
	_, err := fmt.Fprintln(w, styledTable(t))
	return err
}

// styledTable dims the base cases and highlights the answer cell.
func styledTable(t tabulated.Table) string {
	headers := make([]string, 0, t.NumCols()+1)
	headers = append(headers, "coin")
	for col := 0; col < t.NumCols(); col++ {
		headers = append(headers, strconv.Itoa(col))
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return coinStyle
			case row == t.NumRows()-1 && col == t.NumCols():
				return resultStyle.Padding(0, 1)
			case row == 0 || col == 1:
				return baseStyle
			}
			return cellStyle
		})

	for row, cells := range t.Rows() {
		line := make([]string, 0, len(cells)+1)
		line = append(line, strconv.Itoa(t.Coins[row]))
		for _, c := range cells {
			line = append(line, strconv.FormatUint(c, 10))
		}
		tbl.Row(line...)
	}
	return tbl.Render()
}

func renderCount(w io.Writer, count uint64, styled bool) error {
	s := strconv.FormatUint(count, 10)
	if styled {
		s = resultStyle.Render(s)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

func renderCrossCheck(w io.Writer, results []solver.Result, styled bool) error {
	for _, r := range results {
		name := fmt.Sprintf("%-10s", r.Algorithm)
		if styled {
			name = coinStyle.Render(name)
		}
		if _, err := fmt.Fprintf(w, "%s %d (%s)\n", name, r.Count, r.Elapsed()); err != nil {
			return err
		}
	}
	if len(results) == 0 {
		return nil
	}
	return renderCount(w, results[0].Count, styled)
}
