package difftree

import (
	"encoding/json"
	"strings"
)

type Status int

const (
	StatusSame Status = iota
	StatusDiff
	StatusMissing1
	StatusMissing2
)

func (s Status) String() string {
	switch s {
	case StatusDiff:
		return "diff"
	case StatusMissing1:
		return "missing_1"
	case StatusMissing2:
		return "missing_2"
	default:
		return "same"
	}
}

// ParseStatus maps a comparator status string to a Status. "match" is accepted
// as an alias for "same". Unknown values report ok=false and StatusSame.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "same", "match", "":
		return StatusSame, true
	case "diff":
		return StatusDiff, true
	case "missing_1":
		return StatusMissing1, true
	case "missing_2":
		return StatusMissing2, true
	}
	return StatusSame, false
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s, _ = ParseStatus(raw)
	return nil
}

// Node is one comparable field or group of the diff tree. Nodes are treated as
// immutable once decoded.
type Node struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	VR       string `json:"vr"`
	Path     string `json:"path,omitempty"`
	Val1     string `json:"val1"`
	Val2     string `json:"val2"`
	Status   Status `json:"status"`
	Children []Node `json:"children,omitempty"`
}

func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits nodes depth-first in order. Returning false from fn skips the
// node's children.
func Walk(nodes []Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(n *Node, depth int) bool) {
	for i := range nodes {
		if fn(&nodes[i], depth) {
			walk(nodes[i].Children, depth+1, fn)
		}
	}
}

// Count returns the total number of nodes in the tree.
func Count(nodes []Node) int {
	total := 0
	Walk(nodes, func(*Node, int) bool {
		total++
		return true
	})
	return total
}
