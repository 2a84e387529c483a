package app

import (
	"strings"
	"testing"
)

func TestTableSizeSubtractsBordersChromeAndHeader(t *testing.T) {
	w, h := tableSize(120, 40, 5)
	if w != 118 || h != 32 {
		t.Fatalf("tableSize()=(%d,%d) want (118,32)", w, h)
	}
}

func TestTableSizeNeverBelowOne(t *testing.T) {
	w, h := tableSize(1, 3, 10)
	if w != 1 || h != 1 {
		t.Fatalf("tableSize()=(%d,%d) want (1,1)", w, h)
	}
}

func TestScrollOffset(t *testing.T) {
	cases := []struct {
		cursor, offset, height, total, want int
	}{
		{cursor: 0, offset: 0, height: 10, total: 50, want: 0},
		{cursor: 12, offset: 0, height: 10, total: 50, want: 3},
		{cursor: 5, offset: 8, height: 10, total: 50, want: 5},
		{cursor: 9, offset: 5, height: 10, total: 50, want: 5},
		{cursor: 3, offset: 20, height: 10, total: 12, want: 2},
		{cursor: 0, offset: 4, height: 10, total: 3, want: 0},
	}
	for _, c := range cases {
		if got := scrollOffset(c.cursor, c.offset, c.height, c.total); got != c.want {
			t.Fatalf("scrollOffset(%d,%d,%d,%d)=%d want %d", c.cursor, c.offset, c.height, c.total, got, c.want)
		}
	}
}

func TestRenderChipsPlain(t *testing.T) {
	got := renderChips([]string{"patient", "/^00(08|10)/"}, 1, true, 80, false)
	want := "Filters: (patient ×) [/^00(08|10)/ ×]"
	if got != want {
		t.Fatalf("renderChips()=%q want %q", got, want)
	}

	unfocused := renderChips([]string{"patient"}, 0, false, 80, false)
	if strings.Contains(unfocused, "[") {
		t.Fatalf("renderChips() selected a chip without focus: %q", unfocused)
	}
}

func TestRenderChipsEmpty(t *testing.T) {
	if got := renderChips(nil, 0, false, 80, false); got != "Filters: none" {
		t.Fatalf("renderChips(nil)=%q", got)
	}
}

func TestTruncateLinesToWidth(t *testing.T) {
	got := truncateLinesToWidth("abcdef\nxy", 3)
	if got != "abc\nxy" {
		t.Fatalf("truncateLinesToWidth()=%q want %q", got, "abc\nxy")
	}
}
