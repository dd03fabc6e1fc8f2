// Package report renders a search space and repair progress for humans:
// a plain-text search-space dump in the original tool's format, and
// colorized PASS/FAIL/TIMEOUT lines for the terminal (spec.md §7).
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"corrigo/internal/config"
	"corrigo/internal/oracle"
	"corrigo/internal/patch"
	"corrigo/internal/prioritize"
)

// DumpSearchSpace writes one line per patch to w, in decreasing
// prioritization order, mirroring the original tool's dumpSearchSpace: a
// cost column, a location, the patch ID, and the modification kind.
func DumpSearchSpace(w io.Writer, searchSpace []patch.Patch) error {
	ordered := make([]patch.Patch, len(searchSpace))
	copy(ordered, searchSpace)
	prioritize.Prioritize(ordered, config.Default(), nil)

	for _, p := range ordered {
		cost := prioritize.SyntacticDiff(p)
		line := fmt.Sprintf("%.3f %s %s %s\n", cost, p.App.Location, p.ID, p.Meta.Kind)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

var (
	passColor    = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	timeoutColor = color.New(color.FgYellow, color.Bold)
)

// StatusString renders status colorized for a terminal, falling back to
// plain text when color.NoColor is set (not a TTY, or NO_COLOR set).
func StatusString(status oracle.Status) string {
	switch status {
	case oracle.Pass:
		return passColor.Sprint(status.String())
	case oracle.Fail:
		return failColor.Sprint(status.String())
	case oracle.Timeout:
		return timeoutColor.Sprint(status.String())
	default:
		return status.String()
	}
}

// Column is one field of a FormatTable row.
type Column struct {
	Header string
	Value  string
}

// FormatTable right-pads every column to the display width of its widest
// cell (accounting for wide runes via go-runewidth) and writes aligned
// rows to w, header first.
func FormatTable(w io.Writer, rows [][]Column) error {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, col := range row {
			if w := runewidth.StringWidth(col.Value); w > widths[i] {
				widths[i] = w
			}
			if w := runewidth.StringWidth(col.Header); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if _, err := io.WriteString(w, padRow(headerOf(rows[0]), widths)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := io.WriteString(w, padRow(valuesOf(row), widths)); err != nil {
			return err
		}
	}
	return nil
}

func headerOf(row []Column) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Header
	}
	return out
}

func valuesOf(row []Column) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Value
	}
	return out
}

func padRow(cells []string, widths []int) string {
	line := ""
	for i, cell := range cells {
		line += runewidth.FillRight(cell, widths[i]) + "  "
	}
	return line + "\n"
}

// SortByCost is a convenience for callers that want cost order without the
// stable-sort side effect on an already-prioritized slice.
func SortByCost(searchSpace []patch.Patch) []patch.Patch {
	out := make([]patch.Patch, len(searchSpace))
	copy(out, searchSpace)
	sort.SliceStable(out, func(i, j int) bool {
		return prioritize.SyntacticDiff(out[i]) < prioritize.SyntacticDiff(out[j])
	})
	return out
}
