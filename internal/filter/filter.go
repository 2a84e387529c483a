// Package filter narrows a diff tree to the nodes that match a predicate set,
// keeping every ancestor of a match so the result stays a tree.
package filter

import (
	"tagdiff/internal/difftree"
	"tagdiff/internal/logger"
	"tagdiff/internal/search"
)

// FilteredNode is a visible node together with its visible children.
type FilteredNode struct {
	Node *difftree.Node

	// DirectMatch is set when the node's own fields satisfy the predicates.
	DirectMatch bool
	// HasMatchingDescendant is set when at least one child survived filtering.
	HasMatchingDescendant bool
	// AutoExpand is the initial expand state hint for the node's subtree. It
	// is only ever set while predicates are active.
	AutoExpand bool

	Children []FilteredNode
}

// Result is the output of one Filter call. It is never mutated after being
// returned; the next call produces a fresh Result.
type Result struct {
	Nodes []FilteredNode

	// Filtering is true when the call had at least one predicate.
	Filtering bool
	// Matches counts nodes that matched directly.
	Matches int
	// Visible counts every node in Nodes, recursively.
	Visible int
	// Total counts every node of the input tree.
	Total int
}

// NoMatches reports the terminal "nothing matched" state the host should
// present instead of an empty tree.
func (r Result) NoMatches() bool {
	return r.Filtering && len(r.Nodes) == 0
}

type walker struct {
	predicates []search.Predicate
	filtering  bool
	matches    int
	visible    int
	total      int
}

// Filter applies predicates to every root of tree in order. The tree is read
// only; nodes in the result point back into it.
func Filter(tree []difftree.Node, predicates []search.Predicate) Result {
	w := &walker{
		predicates: predicates,
		filtering:  len(predicates) > 0,
	}

	nodes := w.visitAll(tree)
	if nodes == nil {
		nodes = []FilteredNode{}
	}

	logger.Debug("Filter applied",
		"predicates", len(predicates),
		"matches", w.matches,
		"visible", w.visible,
		"pruned", w.total-w.visible)

	return Result{
		Nodes:     nodes,
		Filtering: w.filtering,
		Matches:   w.matches,
		Visible:   w.visible,
		Total:     w.total,
	}
}

func (w *walker) visitAll(nodes []difftree.Node) []FilteredNode {
	var out []FilteredNode
	for i := range nodes {
		if fn, ok := w.visit(&nodes[i]); ok {
			out = append(out, fn)
		}
	}
	return out
}

// visit decides children before the parent: a node survives if it matches
// itself or if any child survived.
func (w *walker) visit(n *difftree.Node) (FilteredNode, bool) {
	w.total++
	direct := search.Matches(n, w.predicates)
	if direct {
		w.matches++
	}

	children := w.visitAll(n.Children)
	hasDescendant := len(children) > 0

	if !direct && !hasDescendant {
		return FilteredNode{}, false
	}

	w.visible++
	return FilteredNode{
		Node:                  n,
		DirectMatch:           direct,
		HasMatchingDescendant: hasDescendant,
		AutoExpand:            w.filtering && hasDescendant,
		Children:              children,
	}, true
}

// Walk visits filtered nodes depth-first in order.
func Walk(nodes []FilteredNode, fn func(n *FilteredNode, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []FilteredNode, depth int, fn func(n *FilteredNode, depth int)) {
	for i := range nodes {
		fn(&nodes[i], depth)
		walk(nodes[i].Children, depth+1, fn)
	}
}
