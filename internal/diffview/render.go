package diffview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	iconExpanded  = "▼"
	iconCollapsed = "▶"
	indentUnit    = "  "
)

var (
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	contextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	statusMarkers = map[Highlight]string{
		HighlightNone:    " ",
		HighlightRemoved: "-",
		HighlightAdded:   "+",
	}
)

// Columns holds the content widths of the table columns.
type Columns struct {
	Tag  int
	Name int
	VR   int
	Val  int
}

// ColumnsFor fits the table into width. The two value columns share what is
// left after the fixed columns.
func ColumnsFor(width int) Columns {
	c := Columns{Tag: 12, Name: 28, VR: 4}
	// cursor + toggle + 5 separators + 2 markers
	fixed := 2 + 2 + 5 + 2 + c.Tag + c.Name + c.VR
	if width-fixed < 20 {
		c.Name = 16
		fixed = 2 + 2 + 5 + 2 + c.Tag + c.Name + c.VR
	}
	c.Val = maxInt(4, (width-fixed)/2)
	return c
}

type RenderOptions struct {
	Width  int
	Cursor int
	// Color disables all styling when false.
	Color bool
}

// Header returns the column header line.
func Header(opts RenderOptions) string {
	c := ColumnsFor(opts.Width)
	line := "    " + strings.Join([]string{
		cell("Tag ID", c.Tag),
		cell("Name", c.Name),
		cell("VR", c.VR),
		cell(" File A Value", c.Val+1),
		cell(" File B Value", c.Val+1),
	}, " ")
	line = ansi.Truncate(line, maxInt(1, opts.Width), "")
	if opts.Color {
		return headerStyle.Render(line)
	}
	return line
}

// RenderTable renders one text line per flattened row.
func RenderTable(lines []Line, opts RenderOptions) []string {
	c := ColumnsFor(opts.Width)
	out := make([]string, 0, len(lines))
	for i, ln := range lines {
		out = append(out, renderLine(ln, c, i == opts.Cursor, opts))
	}
	return out
}

func renderLine(ln Line, c Columns, isCursor bool, opts RenderOptions) string {
	row := ln.Row

	cursorMark := "  "
	if isCursor {
		cursorMark = "> "
	}
	icon := " "
	if row.HasToggle {
		icon = iconCollapsed
		if ln.Expanded {
			icon = iconExpanded
		}
	}

	indent := strings.Repeat(indentUnit, ln.Depth)
	tagText := cell(indent+row.Tag, c.Tag)
	nameText := cell(row.Name, c.Name)
	vrText := cell(row.VR, c.VR)
	valA := valueCell(row, SideA, c.Val, opts.Color)
	valB := valueCell(row, SideB, c.Val, opts.Color)

	if opts.Color {
		if !row.DirectMatch {
			tagText = contextStyle.Render(tagText)
			nameText = contextStyle.Render(nameText)
		} else {
			tagText = tagStyle.Render(tagText)
		}
	}

	prefix := cursorMark + icon + " "
	if opts.Color && isCursor {
		prefix = cursorStyle.Render(prefix)
	}
	line := prefix + strings.Join([]string{tagText, nameText, vrText, valA, valB}, " ")
	if opts.Width > 0 {
		line = ansi.Truncate(line, opts.Width, "")
	}
	return line
}

func valueCell(row *Row, side Side, width int, color bool) string {
	h := row.Highlight(side)
	text := statusMarkers[h] + cell(flattenValue(row.Value(side)), width)
	if !color {
		return text
	}
	switch h {
	case HighlightRemoved:
		return removedStyle.Render(text)
	case HighlightAdded:
		return addedStyle.Render(text)
	}
	return text
}

// flattenValue keeps multi-valued or multi-line values on one table line.
func flattenValue(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", " ⏎ ")
}

func cell(s string, width int) string {
	return padRight(ansi.Truncate(s, width, "…"), width)
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
