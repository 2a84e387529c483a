package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	sgdiff "github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdiff/internal/difftree"
	"tagdiff/internal/diffview"
	"tagdiff/internal/filter"
	"tagdiff/internal/search"
)

func sampleRows(t *testing.T, terms ...string) ([]diffview.Row, bool) {
	t.Helper()
	tree := []difftree.Node{
		{Tag: "(0010,0010)", Name: "PatientName", VR: "PN", Val1: "DOE^JOHN", Val2: "DOE^JANE", Status: difftree.StatusDiff},
		{Tag: "(0008,1111)", Name: "ReferencedSeq", VR: "SQ", Status: difftree.StatusDiff, Children: []difftree.Node{
			{Tag: "(0008,1150)", Name: "RefClassUID", VR: "UI", Val1: "1.2.3", Val2: "1.2.3", Status: difftree.StatusSame},
			{Tag: "(0008,1155)", Name: "RefInstanceUID", VR: "UI", Val2: "9.9", Status: difftree.StatusMissing1},
		}},
	}
	var preds []search.Predicate
	for _, term := range terms {
		p, err := search.New(term, false)
		require.NoError(t, err)
		preds = append(preds, p)
	}
	res := filter.Filter(tree, preds)
	return diffview.ProjectAll(res), res.NoMatches()
}

func TestPlainListsAllRowsWithMarkers(t *testing.T) {
	rows, none := sampleRows(t)
	out := Plain(rows, none, "")

	assert.True(t, strings.HasPrefix(out, "Diff report\n\n"))
	assert.Contains(t, out, "(0010,0010) PatientName [PN] (diff)")
	assert.Contains(t, out, "   - A: DOE^JOHN")
	assert.Contains(t, out, "   + B: DOE^JANE")
	assert.Contains(t, out, "  (0008,1155) RefInstanceUID [UI] (missing_1)")
	assert.Contains(t, out, "  (0008,1150) RefClassUID [UI]\n")
}

func TestPlainNoMatches(t *testing.T) {
	rows, none := sampleRows(t, "nothing-here")
	require.True(t, none)
	assert.Equal(t, "Filtered\n\nNo matches found.", Plain(rows, none, "Filtered"))
}

func TestJSONPlainOutputDecodes(t *testing.T) {
	rows, none := sampleRows(t, "instance")
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewDocument(rows, none), false))

	var got struct {
		Rows []struct {
			Tag      string `json:"tag"`
			Status   string `json:"status"`
			Expanded bool   `json:"expanded"`
			Children []struct {
				Name          string `json:"name"`
				Val1Highlight string `json:"val1_highlight"`
				Val2Highlight string `json:"val2_highlight"`
			} `json:"children"`
		} `json:"rows"`
		NoMatches bool `json:"no_matches"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Rows, 1)
	assert.False(t, got.NoMatches)
	assert.Equal(t, "(0008,1111)", got.Rows[0].Tag)
	assert.True(t, got.Rows[0].Expanded)
	require.Len(t, got.Rows[0].Children, 1)
	assert.Equal(t, "RefInstanceUID", got.Rows[0].Children[0].Name)
	assert.Equal(t, "none", got.Rows[0].Children[0].Val1Highlight)
	assert.Equal(t, "added", got.Rows[0].Children[0].Val2Highlight)
}

func TestJSONNilRowsEncodeAsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewDocument(nil, true), false))
	assert.Contains(t, buf.String(), `"rows": []`)
	assert.Contains(t, buf.String(), `"no_matches": true`)
}

func TestJSONColorKeepsContent(t *testing.T) {
	rows, none := sampleRows(t)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewDocument(rows, none), true))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "PatientName")
}

func TestUnifiedWritesOneFileDiffPerChangedValue(t *testing.T) {
	rows, _ := sampleRows(t)
	out, err := Unified(rows)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "--- a/(0010,0010)\n+++ b/(0010,0010)\n")
	assert.Contains(t, s, "-DOE^JOHN\n+DOE^JANE\n")
	assert.Contains(t, s, "--- /dev/null\n+++ b/(0008,1111).(0008,1155)\n")
	assert.Contains(t, s, "@@ -0,0 +1,1 @@ (0008,1155) RefInstanceUID\n+9.9\n")
	assert.NotContains(t, s, "1.2.3")
}

func TestUnifiedUsesNodePathWhenPresent(t *testing.T) {
	rows := []diffview.Row{{Tag: "x", Path: "Seq[0].x", Status: difftree.StatusDiff, Val1: "a\nb", Val2: "c"}}
	out, err := Unified(rows)
	require.NoError(t, err)
	assert.Contains(t, string(out), "--- a/Seq[0].x")
	assert.Contains(t, string(out), "@@ -1,2 +1,1 @@ x\n-a\n-b\n+c\n")

	fd, err := sgdiff.ParseFileDiff(out)
	require.NoError(t, err)
	assert.Equal(t, "a/Seq[0].x", fd.OrigName)
	require.Len(t, fd.Hunks, 1)
	assert.Equal(t, int32(2), fd.Hunks[0].OrigLines)
	assert.Equal(t, "x", fd.Hunks[0].Section)
}

func TestUnifiedEmptyWhenNothingChanged(t *testing.T) {
	out, err := Unified([]diffview.Row{{Tag: "x", Status: difftree.StatusSame, Val1: "a", Val2: "a"}})
	require.NoError(t, err)
	assert.Empty(t, out)
}
