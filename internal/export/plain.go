package export

import (
	"fmt"
	"strings"

	"tagdiff/internal/difftree"
	"tagdiff/internal/diffview"
)

const noMatchesText = "No matches found."

// Plain renders every projected row, ignoring expand state, as an indented
// text report.
func Plain(rows []diffview.Row, noMatches bool, title string) string {
	if title == "" {
		title = "Diff report"
	}

	lines := []string{title, ""}
	if noMatches {
		lines = append(lines, noMatchesText)
		return strings.Join(lines, "\n")
	}

	walkRows(rows, "", 0, func(r *diffview.Row, _ string, depth int) {
		indent := strings.Repeat("  ", depth)
		header := fmt.Sprintf("%s%s %s", indent, r.Tag, r.Name)
		if r.VR != "" {
			header += " [" + r.VR + "]"
		}
		if r.Status != difftree.StatusSame {
			header += " (" + r.Status.String() + ")"
		}
		lines = append(lines, header)

		if r.Val1 != "" || r.Val2 != "" {
			lines = append(lines, fmt.Sprintf("%s   %s A: %s", indent, marker(r.Val1Highlight), r.Val1))
			lines = append(lines, fmt.Sprintf("%s   %s B: %s", indent, marker(r.Val2Highlight), r.Val2))
		}
	})
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func marker(h diffview.Highlight) string {
	switch h {
	case diffview.HighlightRemoved:
		return "-"
	case diffview.HighlightAdded:
		return "+"
	}
	return " "
}

// walkRows visits rows depth first, passing a dotted path built from the
// row's own path or its tag chain.
func walkRows(rows []diffview.Row, parent string, depth int, fn func(r *diffview.Row, path string, depth int)) {
	for i := range rows {
		r := &rows[i]
		path := r.Path
		if path == "" {
			path = r.Tag
			if parent != "" {
				path = parent + "." + r.Tag
			}
		}
		fn(r, path, depth)
		walkRows(r.Children, path, depth+1, fn)
	}
}
