package search

import (
	"strings"

	"tagdiff/internal/difftree"
)

const fieldSeparator = " "

// SearchText is the lower-cased text predicates are evaluated against: the
// node's tag, name and both values. Children are not included.
func SearchText(n *difftree.Node) string {
	if n == nil {
		return ""
	}
	return strings.ToLower(strings.Join([]string{n.Tag, n.Name, n.Val1, n.Val2}, fieldSeparator))
}

// Matches reports whether any predicate matches the node. Predicates are
// tried in order and evaluation stops at the first match. An empty list
// matches everything.
func Matches(n *difftree.Node, predicates []Predicate) bool {
	if len(predicates) == 0 {
		return true
	}
	return MatchesText(SearchText(n), predicates)
}

// MatchesText is Matches for text already produced by SearchText.
func MatchesText(text string, predicates []Predicate) bool {
	if len(predicates) == 0 {
		return true
	}
	for _, p := range predicates {
		if p.matchText(text) {
			return true
		}
	}
	return false
}
