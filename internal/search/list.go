package search

import "sync"

// List is the insertion-ordered set of active predicates owned by the host.
// Filter runs should work from Snapshot so that edits made while a run is in
// flight do not change its input.
type List struct {
	mu    sync.RWMutex
	items []Predicate
}

func NewList(predicates ...Predicate) *List {
	l := &List{}
	l.items = append(l.items, predicates...)
	return l
}

// Add validates the term and appends it. A rejected term leaves the list
// untouched.
func (l *List) Add(term string, isRegex bool) (Predicate, error) {
	p, err := New(term, isRegex)
	if err != nil {
		return Predicate{}, err
	}
	l.mu.Lock()
	l.items = append(l.items, p)
	l.mu.Unlock()
	return p, nil
}

// Remove deletes the predicate at index i and reports whether it existed.
func (l *List) Remove(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return true
}

func (l *List) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Snapshot returns a copy of the current predicates.
func (l *List) Snapshot() []Predicate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Predicate, len(l.items))
	copy(out, l.items)
	return out
}
