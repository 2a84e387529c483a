package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"tagdiff/internal/diffview"
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	top := strings.Join([]string{
		m.renderTitle(),
		m.renderSearchBar(),
		renderChips(m.chipLabels(), m.chipCursor, m.focus == focusChips, m.width, m.color),
	}, "\n")

	body := lipgloss.JoinVertical(lipgloss.Left, top, m.renderTablePane())
	if m.alertMsg != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderAlertDock())
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

// chromeHeight is the number of rows View uses outside the table pane.
func (m Model) chromeHeight() int {
	h := 3 + lipgloss.Height(m.renderFooter())
	if m.alertMsg != "" {
		h += lipgloss.Height(m.renderAlertDock())
	}
	return h
}

func (m Model) chipLabels() []string {
	preds := m.preds.Snapshot()
	labels := make([]string, len(preds))
	for i, p := range preds {
		labels[i] = p.Label()
	}
	return labels
}

func (m Model) renderTitle() string {
	title := m.title
	if title == "" {
		title = "tagdiff"
	}
	stats := fmt.Sprintf("%d nodes", m.result.Total)
	if m.result.Filtering {
		stats = fmt.Sprintf("%d matches, %d of %d nodes shown", m.result.Matches, m.result.Visible, m.result.Total)
	}
	line := ansi.Truncate(title+"  "+stats, max(1, m.width), "…")
	if m.color {
		return lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

func (m Model) renderSearchBar() string {
	mode := "[text]"
	if m.regexMode {
		mode = "[regex]"
	}
	label := "Search"
	if m.focus == focusSearch && m.color {
		label = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Render(label)
	}
	return label + " " + mode + ": " + m.input.View()
}

func (m Model) renderTablePane() string {
	borderColor := lipgloss.Color("245")
	if m.focus == focusTree {
		borderColor = lipgloss.Color("39")
	}

	header := diffview.Header(diffview.RenderOptions{Width: m.view.Width, Color: m.color})
	return lipgloss.NewStyle().
		Width(max(1, m.view.Width)).
		Height(max(1, m.view.Height+1)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(header + "\n" + m.view.View())
}

func (m Model) renderFooter() string {
	text := truncateLinesToWidth(m.helpText(), m.width)
	if m.color {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(text)
	}
	return text
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "/ search | ctrl+r regex | tab filters | space expand | E expand all | y copy | X clear | ? help | q quit"
	}
	lines := []string{
		"Global: q quit, / focus search, ctrl+r toggle regex mode, tab switch tree/filters, ? toggle help",
		"Search: enter add filter, esc back to tree",
		"Tree: j/k move, ctrl-f/ctrl-b page, g/G top/bottom, space/enter expand or collapse, E expand all, y copy value",
		"Filters: h/l select, x/backspace remove, X clear all, esc back to tree",
	}
	if m.comparator != nil {
		lines = append(lines, "Compare: r run the comparison again")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAlertDock() string {
	hint := "Auto-hides after 3s"
	if m.color {
		hint = dimStyle.Render(hint)
	}
	body := strings.Join([]string{
		m.alertMsg,
		"",
		hint,
	}, "\n")
	return m.renderDockPanel("Notice", lipgloss.Color("220"), lipgloss.Color("220"), body)
}

func (m Model) renderDockPanel(title string, titleColor, borderColor lipgloss.Color, body string) string {
	contentW := max(10, m.width-2)
	titleText := ansi.Truncate(title, max(1, contentW-2), "")
	titleBar := lipgloss.NewStyle().
		Width(contentW).
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(titleColor).
		Render(titleText)

	bodyBlock := lipgloss.NewStyle().
		Width(contentW).
		Padding(1, 2).
		Render(body)

	return lipgloss.NewStyle().
		Width(contentW).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(titleBar + "\n" + bodyBlock)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
