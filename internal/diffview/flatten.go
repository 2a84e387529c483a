package diffview

import "strconv"

// ExpandState holds manual toggles keyed by Line.Key. Rows without an entry
// use their projected Expanded value.
type ExpandState map[string]bool

func (s ExpandState) IsExpanded(key string, row *Row) bool {
	if !row.HasToggle {
		return false
	}
	if v, ok := s[key]; ok {
		return v
	}
	return row.Expanded
}

// Toggle flips the expand state of the row at key.
func (s ExpandState) Toggle(key string, row *Row) {
	s[key] = !s.IsExpanded(key, row)
}

// Line is one visible row after applying expand state.
type Line struct {
	Row      *Row
	Key      string
	Depth    int
	Expanded bool
}

// Flatten lists the rows that are currently on screen, depth first. Children
// of collapsed rows are omitted.
func Flatten(rows []Row, state ExpandState) []Line {
	out := make([]Line, 0, len(rows))
	flatten(rows, "", 0, state, &out)
	return out
}

func flatten(rows []Row, parentKey string, depth int, state ExpandState, out *[]Line) {
	for i := range rows {
		row := &rows[i]
		key := strconv.Itoa(i)
		if parentKey != "" {
			key = parentKey + "/" + key
		}
		expanded := state.IsExpanded(key, row)
		*out = append(*out, Line{
			Row:      row,
			Key:      key,
			Depth:    depth,
			Expanded: expanded,
		})
		if expanded {
			flatten(row.Children, key, depth+1, state, out)
		}
	}
}

// ExpandAll returns a state with every toggleable row expanded.
func ExpandAll(rows []Row) ExpandState {
	state := make(ExpandState)
	var visit func(rows []Row, parentKey string)
	visit = func(rows []Row, parentKey string) {
		for i := range rows {
			key := strconv.Itoa(i)
			if parentKey != "" {
				key = parentKey + "/" + key
			}
			if rows[i].HasToggle {
				state[key] = true
			}
			visit(rows[i].Children, key)
		}
	}
	visit(rows, "")
	return state
}
