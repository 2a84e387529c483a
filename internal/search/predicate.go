package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyTerm is returned when a term is blank after trimming.
var ErrEmptyTerm = errors.New("search term is empty")

// InvalidPatternError carries the compiler message for a rejected regex term.
type InvalidPatternError struct {
	Term string
	Err  error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %v", e.Term, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Predicate is a single search filter, either a literal substring or a
// regular expression. Both kinds match case-insensitively.
type Predicate struct {
	Term    string `json:"term"`
	IsRegex bool   `json:"is_regex"`

	needle string
	re     *regexp.Regexp
}

// New validates a user-entered term. Regex terms must compile; the returned
// predicate carries the compiled pattern.
func New(term string, isRegex bool) (Predicate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Predicate{}, ErrEmptyTerm
	}

	p := Predicate{Term: term, IsRegex: isRegex}
	if isRegex {
		re, err := compile(term)
		if err != nil {
			return Predicate{}, &InvalidPatternError{Term: term, Err: err}
		}
		p.re = re
		return p, nil
	}
	p.needle = strings.ToLower(term)
	return p, nil
}

// Label is the chip text shown for the predicate.
func (p Predicate) Label() string {
	if p.IsRegex {
		return "/" + p.Term + "/"
	}
	return p.Term
}

func (p Predicate) String() string {
	return p.Label()
}

// matchText reports whether the lower-cased search text satisfies p. A
// predicate that cannot be evaluated never matches.
func (p Predicate) matchText(text string) bool {
	if p.IsRegex {
		re := p.re
		if re == nil {
			var err error
			re, err = compile(p.Term)
			if err != nil {
				return false
			}
		}
		return re.MatchString(text)
	}

	needle := p.needle
	if needle == "" {
		needle = strings.ToLower(strings.TrimSpace(p.Term))
	}
	if needle == "" {
		return false
	}
	return strings.Contains(text, needle)
}

func compile(term string) (*regexp.Regexp, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptyTerm
	}
	return regexp.Compile("(?i)" + term)
}
