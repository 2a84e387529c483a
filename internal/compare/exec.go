package compare

import (
	"context"
	"time"

	"tagdiff/internal/difftree"
	"tagdiff/internal/logger"
	"tagdiff/internal/util"
)

// ExecComparator runs an external command with both paths appended to its
// arguments and decodes the JSON it prints.
type ExecComparator struct {
	Command []string
	Dir     string
	Timeout time.Duration
}

func NewExecComparator(command []string, timeout time.Duration) *ExecComparator {
	return &ExecComparator{Command: append([]string(nil), command...), Timeout: timeout}
}

func (c *ExecComparator) Compare(ctx context.Context, pathA, pathB string) ([]difftree.Node, error) {
	if err := checkInputs(pathA, pathB); err != nil {
		return nil, err
	}
	if len(c.Command) == 0 {
		return nil, fail(ErrNotConfigured)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string(nil), c.Command[1:]...), pathA, pathB)
	start := time.Now()
	out, err := util.Run(ctx, c.Dir, c.Command[0], args...)
	if err != nil {
		return nil, fail(err)
	}
	logger.Debug("Comparator command finished", "command", c.Command[0], "bytes", len(out), "duration", time.Since(start))

	nodes, err := difftree.DecodeBytes([]byte(out))
	if err != nil {
		return nil, fail(err)
	}
	return nodes, nil
}
