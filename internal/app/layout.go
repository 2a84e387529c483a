package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// tableSize returns the content size of the bordered tree pane. chrome is the
// number of rows used above and below the pane. One content row is reserved
// for the column header.
func tableSize(totalWidth, totalHeight, chrome int) (int, int) {
	// Border overhead is 2 in each direction.
	w := totalWidth - 2
	if w < 1 {
		w = 1
	}
	h := totalHeight - chrome - 2 - 1
	if h < 1 {
		h = 1
	}
	return w, h
}

// scrollOffset returns the viewport offset that keeps cursor inside a window
// of height rows, moving as little as possible from offset.
func scrollOffset(cursor, offset, height, total int) int {
	if height <= 0 || total <= 0 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	if maxOff := total - height; offset > maxOff {
		offset = max(0, maxOff)
	}
	return max(0, offset)
}

var (
	chipStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("60")).Padding(0, 1)
	chipSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("39")).Padding(0, 1).Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// renderChips lays the predicate labels out on one line. The selected chip is
// only highlighted while the chip bar has focus.
func renderChips(labels []string, selected int, focused bool, width int, color bool) string {
	if len(labels) == 0 {
		line := "Filters: none"
		if color {
			return dimStyle.Render(line)
		}
		return line
	}

	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		text := label + " ×"
		sel := focused && i == selected
		switch {
		case color && sel:
			text = chipSelectedStyle.Render(text)
		case color:
			text = chipStyle.Render(text)
		case sel:
			text = "[" + text + "]"
		default:
			text = "(" + text + ")"
		}
		parts = append(parts, text)
	}
	return ansi.Truncate("Filters: "+strings.Join(parts, " "), max(1, width), "…")
}

func truncateLinesToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}
