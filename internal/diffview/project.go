package diffview

import (
	"tagdiff/internal/difftree"
	"tagdiff/internal/filter"
)

// HighlightFor maps a diff status to the highlights of the A and B columns.
// It does not depend on search state.
func HighlightFor(status difftree.Status) (Highlight, Highlight) {
	switch status {
	case difftree.StatusDiff:
		return HighlightRemoved, HighlightAdded
	case difftree.StatusMissing1:
		return HighlightNone, HighlightAdded
	case difftree.StatusMissing2:
		return HighlightRemoved, HighlightNone
	default:
		return HighlightNone, HighlightNone
	}
}

// Project converts a filtered node and its visible subtree into rows.
func Project(fn filter.FilteredNode) Row {
	n := fn.Node
	if n == nil {
		n = &difftree.Node{}
	}

	h1, h2 := HighlightFor(n.Status)
	row := Row{
		Node:                  n,
		Tag:                   n.Tag,
		Name:                  n.Name,
		VR:                    n.VR,
		Path:                  n.Path,
		Status:                n.Status,
		Val1:                  n.Val1,
		Val2:                  n.Val2,
		Val1Highlight:         h1,
		Val2Highlight:         h2,
		DirectMatch:           fn.DirectMatch,
		HasMatchingDescendant: fn.HasMatchingDescendant,
		HasToggle:             len(fn.Children) > 0,
		Expanded:              fn.AutoExpand,
	}

	// The absent side is shown empty even if the comparator sent text for it.
	switch n.Status {
	case difftree.StatusMissing1:
		row.Val1 = ""
	case difftree.StatusMissing2:
		row.Val2 = ""
	}

	if len(fn.Children) > 0 {
		row.Children = make([]Row, 0, len(fn.Children))
		for _, child := range fn.Children {
			row.Children = append(row.Children, Project(child))
		}
	}
	return row
}

// ProjectAll projects every root of a filter result.
func ProjectAll(res filter.Result) []Row {
	rows := make([]Row, 0, len(res.Nodes))
	for _, fn := range res.Nodes {
		rows = append(rows, Project(fn))
	}
	return rows
}
