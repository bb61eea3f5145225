package session

import (
	"bufio"
	"context"
	"io"

	"go.uber.org/zap"

	"pricing-calc/internal/errors"
)

// Result summarizes a script run
type Result struct {
	// Lines is the number of lines read
	Lines int

	// Applied is the number of commands executed
	Applied int
}

// Run executes a script line by line and stops at the first failing line.
// The context is checked between lines.
func Run(ctx context.Context, r io.Reader, env *Env, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var res Result
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Lines++

		cmd, err := Parse(scanner.Text())
		if err != nil {
			return res, lineError(err, res.Lines)
		}
		if cmd == nil {
			continue
		}

		logger.Debug("applying command",
			zap.Int("line", res.Lines),
			zap.String("command", cmd.Name()),
		)
		if err := cmd.Apply(env); err != nil {
			return res, lineError(err, res.Lines)
		}
		res.Applied++
	}

	if err := scanner.Err(); err != nil {
		return res, errors.Wrap(errors.TypeInput, "cannot read script", err)
	}
	return res, nil
}

func lineError(err error, line int) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithContext("line", line)
	}
	return errors.Internal("command failed", err).WithContext("line", line)
}
