package export

import (
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"

	"tagdiff/internal/difftree"
	"tagdiff/internal/diffview"
)

// Unified writes one file diff per changed value in the projection so the
// result can be read by any unified-diff tool. Rows whose status is same, or
// which carry no value on either side, are skipped.
func Unified(rows []diffview.Row) ([]byte, error) {
	var fds []*sgdiff.FileDiff
	walkRows(rows, "", 0, func(r *diffview.Row, path string, _ int) {
		if r.Status == difftree.StatusSame || (r.Val1 == "" && r.Val2 == "") {
			return
		}
		fds = append(fds, fileDiff(r, path))
	})
	if len(fds) == 0 {
		return nil, nil
	}
	return sgdiff.PrintMultiFileDiff(fds)
}

func fileDiff(r *diffview.Row, path string) *sgdiff.FileDiff {
	oldLines := valueLines(r.Val1)
	newLines := valueLines(r.Val2)

	var body strings.Builder
	for _, ln := range oldLines {
		body.WriteString("-" + ln + "\n")
	}
	for _, ln := range newLines {
		body.WriteString("+" + ln + "\n")
	}

	hunk := &sgdiff.Hunk{
		OrigStartLine: startLine(oldLines),
		OrigLines:     int32(len(oldLines)),
		NewStartLine:  startLine(newLines),
		NewLines:      int32(len(newLines)),
		Section:       strings.TrimSpace(r.Tag + " " + r.Name),
		Body:          []byte(body.String()),
	}

	orig, next := "a/"+path, "b/"+path
	if len(oldLines) == 0 {
		orig = "/dev/null"
	}
	if len(newLines) == 0 {
		next = "/dev/null"
	}
	return &sgdiff.FileDiff{
		OrigName: orig,
		NewName:  next,
		Hunks:    []*sgdiff.Hunk{hunk},
	}
}

func valueLines(v string) []string {
	if v == "" {
		return nil
	}
	v = strings.ReplaceAll(v, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(v, "\n"), "\n")
}

func startLine(lines []string) int32 {
	if len(lines) == 0 {
		return 0
	}
	return 1
}
