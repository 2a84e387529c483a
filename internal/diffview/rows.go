package diffview

import (
	"fmt"

	"tagdiff/internal/difftree"
)

type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Highlight is the marking applied to one value column.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightRemoved
	HighlightAdded
)

func (h Highlight) String() string {
	switch h {
	case HighlightRemoved:
		return "removed"
	case HighlightAdded:
		return "added"
	default:
		return "none"
	}
}

func (h Highlight) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Highlight) UnmarshalText(text []byte) error {
	switch string(text) {
	case "removed":
		*h = HighlightRemoved
	case "added":
		*h = HighlightAdded
	case "none", "":
		*h = HighlightNone
	default:
		return fmt.Errorf("unknown highlight %q", text)
	}
	return nil
}

// Row is the render-ready form of one visible node.
type Row struct {
	Node *difftree.Node `json:"-"`

	Tag    string          `json:"tag"`
	Name   string          `json:"name"`
	VR     string          `json:"vr"`
	Path   string          `json:"path,omitempty"`
	Status difftree.Status `json:"status"`

	Val1          string    `json:"val1"`
	Val2          string    `json:"val2"`
	Val1Highlight Highlight `json:"val1_highlight"`
	Val2Highlight Highlight `json:"val2_highlight"`

	DirectMatch           bool `json:"direct_match"`
	HasMatchingDescendant bool `json:"has_matching_descendant"`

	// HasToggle is true only when the row has visible children.
	HasToggle bool `json:"has_toggle"`
	// Expanded is the initial expand state of the row's subtree.
	Expanded bool `json:"expanded"`

	Children []Row `json:"children,omitempty"`
}

// Value returns the displayed text for one side.
func (r Row) Value(side Side) string {
	if side == SideA {
		return r.Val1
	}
	return r.Val2
}

func (r Row) Highlight(side Side) Highlight {
	if side == SideA {
		return r.Val1Highlight
	}
	return r.Val2Highlight
}
