package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/youta-t/flarc"
)

// Task is the body of a wit subcommand. It receives the group-level
// CommonFlags and a logger bound to the commandline's stderr.
type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlags CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask adapts a Task into a flarc.Task. The CommonFlags value the
// command group propagates is picked out of params; everything else
// passes through.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlags CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlags = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(
			ctx,
			logger,
			commonFlags,
			cl,
			newpos,
		)
	}
}
