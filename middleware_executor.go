package cmdflow

import (
	"context"
	"maps"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
)

type executorMiddleware struct {
	engine *Engine
}

type invokeFunc func(ctx context.Context, c *CommandContext) (Result, error)

func (m *executorMiddleware) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	if c.Result != nil {
		return next(ctx, c)
	}

	cmd := c.Command
	if cmd == nil {
		return errs.Fault(errs.ErrMissingCommandMatches)
	}
	if c.Args == nil {
		c.Args = NewArguments()
	}
	if err := ctx.Err(); err != nil {
		return errs.Canceled(err)
	}

	opts := &m.engine.options
	invoke := invokeFunc(cmd.executor.Invoke)
	if opts.PanicRecovery {
		invoke = recoverPanics(cmd, invoke)
	}

	var (
		result Result
		err    error
	)
	switch cmd.EffectiveRunMode(opts) {
	case types.RunModeAwaited:
		task := Go(func() (Result, error) {
			return invoke(ctx, c)
		})
		result, err = task.Await(ctx)
	case types.RunModeConcurrent:
		m.detach(ctx, c, recoverPanics(cmd, invoke))
		result = SuccessResult{}
	default:
		result, err = invoke(ctx, c)
	}
	if err != nil {
		return err
	}

	c.Result = result
	return next(ctx, c)
}

// detach runs invoke on its own goroutine with a context that outlives the request.
// The handler gets a copy of c with its own Items and features, since c is handed back to
// the caller once the pipeline returns. Failures are reported to the async error handler.
func (m *executorMiddleware) detach(ctx context.Context, c *CommandContext, invoke invokeFunc) {
	detached := context.WithoutCancel(ctx)
	handler := m.engine.options.AsyncErrorHandler
	c.Logger.Debug("command detached", "command", c.Command)

	dc := *c
	dc.Items = maps.Clone(c.Items)
	dc.features = maps.Clone(c.features)
	go func() {
		if _, err := invoke(detached, &dc); err != nil && handler != nil {
			handler(&dc, err)
		}
	}()
}

func recoverPanics(cmd *Command, invoke invokeFunc) invokeFunc {
	return func(ctx context.Context, c *CommandContext) (result Result, err error) {
		defer func() {
			if r := recover(); r != nil {
				result, err = nil, errs.ErrHandlerPanic.WithArgs(cmd.Path(), r)
			}
		}()
		return invoke(ctx, c)
	}
}
