package cmdflow

import (
	"context"
	"reflect"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types/orderedmap"
)

type argumentBinderMiddleware struct {
	engine *Engine
}

func (m *argumentBinderMiddleware) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	if c.Result != nil || c.Args != nil {
		return next(ctx, c)
	}

	feature, err := matchesFeature(c)
	if err != nil {
		return err
	}

	prevCommand, prevMatch := c.Command, c.Match
	failures := orderedmap.New[*Command, Result]()
	for _, match := range feature.Matches {
		c.Command, c.Match = match.Command, &match

		args, failure, err := m.bind(ctx, c, match)
		if err != nil {
			c.Command, c.Match = prevCommand, prevMatch
			return err
		}
		if failure != nil {
			c.Logger.Debug("candidate failed to bind", "command", match.Command, "reason", failure.Reason())
			failures.Set(match.Command, failure)
			continue
		}

		c.Args = args
		c.Logger.Debug("arguments bound", "command", match.Command, "args", args.Len())
		return next(ctx, c)
	}

	c.Command, c.Match = prevCommand, prevMatch
	c.Result = failureResult(failures)
	return nil
}

func (m *argumentBinderMiddleware) bind(ctx context.Context, c *CommandContext, match CommandMatch) (*Arguments, Result, error) {
	parser, err := m.argumentParser(c, match.Command)
	if err != nil {
		return nil, nil, err
	}

	parsed, err := parser.Parse(ctx, c, match.Command, match.Remaining)
	if err != nil {
		return nil, nil, err
	}
	if !parsed.Success() {
		if missing, ok := parsed.Failure.(MissingTypeParserResult); ok {
			p := missing.Parameter
			return nil, nil, errs.Fault(errs.ErrMissingTypeParser.WithArgs(p.Name(), p.ValueType().String()))
		}
		return nil, parsed.Failure, nil
	}

	failure, err := checkParameterPreconditions(ctx, c, parsed.Args)
	if err != nil || failure != nil {
		return nil, failure, err
	}
	return parsed.Args, nil, nil
}

// argumentParser resolves the effective argument parser type of cmd through the service
// resolver. Commands without an override use the engine's parser.
func (m *argumentBinderMiddleware) argumentParser(c *CommandContext, cmd *Command) (ArgumentParser, error) {
	t := cmd.EffectiveArgumentParserType()
	if t == nil {
		return m.engine.argumentParser, nil
	}

	inst, err := resolveService(c, t)
	if err != nil {
		return nil, errs.Fault(errs.ErrMissingArgumentParser.WithArgs(cmd.Path()).Wrap(err))
	}
	parser, ok := inst.(ArgumentParser)
	if !ok {
		return nil, errs.Fault(errs.ErrServiceTypeMismatch.WithArgs(reflect.TypeOf(inst), "cmdflow.ArgumentParser"))
	}
	return parser, nil
}
