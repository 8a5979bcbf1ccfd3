package cmdflow

import (
	"context"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types/orderedmap"
)

type preconditionMiddleware struct{}

func (m *preconditionMiddleware) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	if c.Result != nil || c.Args != nil {
		return next(ctx, c)
	}

	feature, err := matchesFeature(c)
	if err != nil {
		return err
	}

	prevCommand, prevMatch := c.Command, c.Match
	failures := orderedmap.New[*Command, Result]()
	passed := make([]CommandMatch, 0, len(feature.Matches))
	for _, match := range feature.Matches {
		c.Command, c.Match = match.Command, &match
		failure, err := checkPreconditions(ctx, c, match.Command)
		if err != nil {
			c.Command, c.Match = prevCommand, prevMatch
			return err
		}
		if failure != nil {
			c.Logger.Debug("precondition failed", "command", match.Command, "reason", failure.Reason())
			failures.Set(match.Command, failure)
			continue
		}
		passed = append(passed, match)
	}
	c.Command, c.Match = prevCommand, prevMatch

	if len(passed) == 0 {
		c.Result = failureResult(failures)
		return nil
	}

	feature.Matches = passed
	return next(ctx, c)
}

func checkPreconditions(ctx context.Context, c *CommandContext, cmd *Command) (Result, error) {
	for _, pre := range cmd.EffectivePreconditions() {
		if err := ctx.Err(); err != nil {
			return nil, errs.Canceled(err)
		}
		if err := pre.Check(ctx, c); err != nil {
			if abort := abortError(err); abort != nil {
				return nil, abort
			}
			return PreconditionFailResult{Precondition: pre.Name(), Err: err}, nil
		}
	}
	return nil, nil
}

func checkParameterPreconditions(ctx context.Context, c *CommandContext, args *Arguments) (Result, error) {
	for p, value := range args.All() {
		for _, pre := range p.preconditions {
			if err := ctx.Err(); err != nil {
				return nil, errs.Canceled(err)
			}
			if err := pre.Check(ctx, c, p, value); err != nil {
				if abort := abortError(err); abort != nil {
					return nil, abort
				}
				return PreconditionFailResult{Precondition: pre.Name(), Err: err}, nil
			}
		}
	}
	return nil, nil
}
