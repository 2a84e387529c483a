package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("system clipboard is not available")

// writeAll is replaced in tests.
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

func CopyText(text string) error {
	if unsupported() {
		return ErrUnavailable
	}
	return writeAll(text)
}
