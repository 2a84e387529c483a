package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tagdiff/internal/clipboard"
	"tagdiff/internal/compare"
	"tagdiff/internal/difftree"
	"tagdiff/internal/diffview"
	"tagdiff/internal/filter"
	"tagdiff/internal/logger"
	"tagdiff/internal/search"
)

type focusArea int

const (
	focusTree focusArea = iota
	focusSearch
	focusChips
)

const (
	textComparing = "Comparing..."
	textNoMatches = "No matches found."
	textEmpty     = "No differences to show."
)

type treeLoadedMsg struct {
	nodes []difftree.Node
	err   error
}

type clipboardResultMsg struct {
	err error
}

type alertTickMsg struct{}

// Options configures a Model. Either Tree or Comparator provides the data;
// with a Comparator the tree is fetched asynchronously from Init.
type Options struct {
	Tree       []difftree.Node
	Comparator compare.Comparator
	PathA      string
	PathB      string
	Title      string

	RegexDefault bool
	Color        bool
}

// Model is the Bubble Tea state container for the app.
type Model struct {
	keys  KeyMap
	focus focusArea
	color bool

	comparator compare.Comparator
	pathA      string
	pathB      string
	title      string

	width  int
	height int
	ready  bool

	tree      []difftree.Node
	comparing bool
	err       error

	preds      *search.List
	regexMode  bool
	input      textinput.Model
	chipCursor int

	result filter.Result
	rows   []diffview.Row
	expand diffview.ExpandState
	lines  []diffview.Line
	cursor int
	view   viewport.Model

	helpOpen   bool
	alertMsg   string
	alertUntil time.Time

	copyText func(string) error
}

func NewModel(opts Options) Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Type a filter and press enter"
	input.CharLimit = 512
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	title := opts.Title
	if title == "" && opts.PathA != "" {
		title = filepath.Base(opts.PathA) + " ↔ " + filepath.Base(opts.PathB)
	}

	m := Model{
		keys:       defaultKeyMap(),
		focus:      focusTree,
		color:      opts.Color,
		comparator: opts.Comparator,
		pathA:      opts.PathA,
		pathB:      opts.PathB,
		title:      title,
		tree:       opts.Tree,
		preds:      search.NewList(),
		regexMode:  opts.RegexDefault,
		input:      input,
		expand:     make(diffview.ExpandState),
		view:       viewport.New(1, 1),
		copyText:   clipboard.CopyText,
	}
	if m.comparator != nil && m.tree == nil {
		m.comparing = true
	}
	m.applyFilter()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.comparing {
		return tea.Batch(m.compareCmd(), alertTickCmd())
	}
	return alertTickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case treeLoadedMsg:
		m.comparing = false
		m.err = msg.err
		if msg.err != nil {
			logger.Warn("Comparison failed", "a", m.pathA, "b", m.pathB, "error", msg.err)
			m.tree = nil
		} else {
			logger.Info("Tree loaded", "nodes", difftree.Count(msg.nodes))
			m.tree = msg.nodes
		}
		m.applyFilter()
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.setAlert("Copied value to clipboard.")
		}
		m.resize()
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && !m.alertUntil.IsZero() && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.alertUntil = time.Time{}
			m.resize()
		}
		return m, alertTickCmd()

	case tea.KeyMsg:
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.helpOpen = !m.helpOpen
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.focus = focusSearch
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.RegexMode):
			m.regexMode = !m.regexMode
			return m, nil
		case key.Matches(msg, m.keys.ToggleFocus):
			if m.focus == focusTree && m.preds.Len() > 0 {
				m.focus = focusChips
				m.chipCursor = min(m.chipCursor, m.preds.Len()-1)
			} else {
				m.focus = focusTree
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh) && m.comparator != nil && !m.comparing:
			m.comparing = true
			m.err = nil
			m.refreshContent()
			return m, m.compareCmd()
		}

		if m.focus == focusChips {
			return m.updateChips(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.focus = focusTree
		return m, nil
	case key.Matches(msg, m.keys.RegexMode):
		m.regexMode = !m.regexMode
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.addPredicate()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateChips(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.focus = focusTree
	case key.Matches(msg, m.keys.Left):
		if m.chipCursor > 0 {
			m.chipCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.chipCursor < m.preds.Len()-1 {
			m.chipCursor++
		}
	case key.Matches(msg, m.keys.RemoveChip):
		m.removePredicate(m.chipCursor)
	case key.Matches(msg, m.keys.ClearChips):
		m.clearPredicates()
	}
	return m, nil
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-max(1, m.view.Height))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(max(1, m.view.Height))
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.lines))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.lines))
	case key.Matches(msg, m.keys.Toggle):
		m.toggleAtCursor()
	case key.Matches(msg, m.keys.ExpandAll):
		m.expand = diffview.ExpandAll(m.rows)
		m.reflatten()
	case key.Matches(msg, m.keys.ClearChips):
		m.clearPredicates()
	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyCmd()
		return m, cmd
	}
	return m, nil
}

func (m *Model) addPredicate() {
	p, err := m.preds.Add(m.input.Value(), m.regexMode)
	if err != nil {
		m.setAlert(err.Error())
		m.resize()
		return
	}
	logger.Debug("Predicate added", "term", p.Term, "regex", p.IsRegex, "count", m.preds.Len())
	m.input.SetValue("")
	m.applyFilter()
}

func (m *Model) removePredicate(i int) {
	if !m.preds.Remove(i) {
		return
	}
	if m.chipCursor >= m.preds.Len() {
		m.chipCursor = max(0, m.preds.Len()-1)
	}
	if m.preds.Len() == 0 {
		m.focus = focusTree
	}
	m.applyFilter()
}

func (m *Model) clearPredicates() {
	if m.preds.Len() == 0 {
		return
	}
	m.preds.Clear()
	m.chipCursor = 0
	if m.focus == focusChips {
		m.focus = focusTree
	}
	m.applyFilter()
}

// applyFilter recomputes the projection from the current predicates. Manual
// toggles are dropped so every row starts from its auto-expand state.
func (m *Model) applyFilter() {
	m.result = filter.Filter(m.tree, m.preds.Snapshot())
	m.rows = diffview.ProjectAll(m.result)
	m.expand = make(diffview.ExpandState)
	m.cursor = 0
	m.view.GotoTop()
	m.reflatten()
}

func (m *Model) reflatten() {
	m.lines = diffview.Flatten(m.rows, m.expand)
	m.clampCursor()
	m.refreshContent()
}

func (m *Model) toggleAtCursor() {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return
	}
	ln := m.lines[m.cursor]
	if !ln.Row.HasToggle {
		return
	}
	m.expand.Toggle(ln.Key, ln.Row)
	m.reflatten()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.refreshContent()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// placeholder returns the text shown instead of the table, if any.
func (m Model) placeholder() string {
	switch {
	case m.comparing:
		return textComparing
	case m.err != nil:
		return "Error: " + m.err.Error()
	case m.result.NoMatches():
		return textNoMatches
	case len(m.lines) == 0:
		return textEmpty
	}
	return ""
}

func (m *Model) refreshContent() {
	if text := m.placeholder(); text != "" {
		m.view.SetContent(text)
		m.view.GotoTop()
		return
	}
	rendered := diffview.RenderTable(m.lines, diffview.RenderOptions{
		Width:  m.view.Width,
		Cursor: m.cursor,
		Color:  m.color,
	})
	m.view.SetContent(joinLines(rendered))
	m.view.SetYOffset(scrollOffset(m.cursor, m.view.YOffset, m.view.Height, len(rendered)))
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	w, h := tableSize(m.width, m.height, m.chromeHeight())
	m.view.Width = w
	m.view.Height = h
	m.input.Width = max(1, w-24)
	m.refreshContent()
}

func (m Model) currentRow() *diffview.Row {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	return m.lines[m.cursor].Row
}

func (m *Model) copyCmd() tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}
	text := row.Val2
	if text == "" {
		text = row.Val1
	}
	if text == "" {
		m.setAlert("Nothing to copy.")
		m.resize()
		return nil
	}
	copyText := m.copyText
	return func() tea.Msg {
		return clipboardResultMsg{err: copyText(text)}
	}
}

func (m Model) compareCmd() tea.Cmd {
	cmp := m.comparator
	a, b := m.pathA, m.pathB
	return func() tea.Msg {
		nodes, err := cmp.Compare(context.Background(), a, b)
		return treeLoadedMsg{nodes: nodes, err: err}
	}
}

func alertTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

func (m *Model) setAlert(msg string) {
	m.alertMsg = msg
	m.alertUntil = time.Now().Add(3 * time.Second)
}
