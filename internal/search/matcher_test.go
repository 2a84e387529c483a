package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdiff/internal/difftree"
)

func mustPredicate(t *testing.T, term string, isRegex bool) Predicate {
	t.Helper()
	p, err := New(term, isRegex)
	require.NoError(t, err)
	return p
}

func TestSearchTextJoinsOwnFieldsLowerCased(t *testing.T) {
	n := &difftree.Node{
		Tag:      "00100010",
		Name:     "PatientName",
		VR:       "PN",
		Val1:     "DOE^John",
		Val2:     "",
		Children: []difftree.Node{{Tag: "child-only"}},
	}
	assert.Equal(t, "00100010 patientname doe^john ", SearchText(n))
	assert.Equal(t, "", SearchText(nil))
}

func TestMatchesEmptyPredicatesMatchesEverything(t *testing.T) {
	assert.True(t, Matches(&difftree.Node{}, nil))
	assert.True(t, Matches(&difftree.Node{Tag: "x"}, []Predicate{}))
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	n := &difftree.Node{Tag: "0008", Name: "StudyDescription", Val1: "ABC scan"}

	assert.True(t, Matches(n, []Predicate{mustPredicate(t, "abc", false)}))
	assert.True(t, Matches(n, []Predicate{mustPredicate(t, "studydesc", false)}))
	assert.True(t, Matches(n, []Predicate{mustPredicate(t, "^0008 STUDY", true)}))
}

func TestMatchesUsesOrAcrossPredicates(t *testing.T) {
	n := &difftree.Node{Tag: "00100020", Name: "PatientID", Val1: "123", Val2: "456"}
	preds := []Predicate{
		mustPredicate(t, "nothing-here", false),
		mustPredicate(t, "patientid", false),
	}
	assert.True(t, Matches(n, preds))
	assert.False(t, Matches(n, preds[:1]))
}

func TestMatchesDoesNotLookAtChildren(t *testing.T) {
	n := &difftree.Node{
		Tag:      "group",
		Children: []difftree.Node{{Tag: "needle"}},
	}
	assert.False(t, Matches(n, []Predicate{mustPredicate(t, "needle", false)}))
}

func TestMatchesMatchesValueFields(t *testing.T) {
	n := &difftree.Node{Tag: "0020000E", Name: "SeriesInstanceUID", Val2: "1.2.840.113619"}
	assert.True(t, Matches(n, []Predicate{mustPredicate(t, `1\.2\.840`, true)}))
	assert.False(t, Matches(n, []Predicate{mustPredicate(t, `^1\.2`, true)}), "anchors apply to the joined text")
}

func TestMatchesToleratesUnvalidatedPredicates(t *testing.T) {
	n := &difftree.Node{Tag: "abc"}

	bad := Predicate{Term: "(", IsRegex: true}
	assert.False(t, Matches(n, []Predicate{bad}))

	blank := Predicate{Term: "  "}
	assert.False(t, Matches(n, []Predicate{blank}))

	// A bad predicate does not stop later ones from matching.
	assert.True(t, Matches(n, []Predicate{bad, {Term: "ABC"}}))
	assert.True(t, Matches(n, []Predicate{{Term: "a.c", IsRegex: true}}))
}
