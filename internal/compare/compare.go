// Package compare obtains a diff tree from an external comparator. The
// comparison itself is not done here; a comparator either returns a complete
// tree or fails as a whole.
package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tagdiff/internal/difftree"
)

var (
	// ErrComparison wraps every comparator failure.
	ErrComparison = errors.New("comparison failed")
	// ErrMissingInput is returned before contacting the comparator when an
	// input path is blank.
	ErrMissingInput = errors.New("two files are required")
	// ErrNotConfigured is returned when neither a URL nor a command is set.
	ErrNotConfigured = errors.New("no comparator configured")
)

// RemoteError is the {"error": "..."} payload returned by a comparator.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Comparator compares two documents and returns their diff tree.
type Comparator interface {
	Compare(ctx context.Context, pathA, pathB string) ([]difftree.Node, error)
}

type Options struct {
	URL     string
	Command []string
	Timeout time.Duration
}

// New picks the HTTP comparator when a URL is set, otherwise the command.
func New(opts Options) (Comparator, error) {
	switch {
	case opts.URL != "":
		return NewHTTPComparator(opts.URL, opts.Timeout), nil
	case len(opts.Command) > 0:
		return NewExecComparator(opts.Command, opts.Timeout), nil
	}
	return nil, ErrNotConfigured
}

func fail(err error) error {
	if errors.Is(err, ErrComparison) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrComparison, err)
}

func checkInputs(pathA, pathB string) error {
	if pathA == "" || pathB == "" {
		return fail(ErrMissingInput)
	}
	return nil
}
