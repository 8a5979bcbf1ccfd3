package cmdflow

import (
	"context"
	"strings"

	"github.com/napalu/cmdflow/errs"
)

type stringMatcherMiddleware struct {
	engine *Engine
}

func (m *stringMatcherMiddleware) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	if c.Command != nil || c.Result != nil {
		return next(ctx, c)
	}

	if strings.TrimSpace(c.RawArgs) == "" {
		return errs.Fault(errs.ErrEmptyInput)
	}

	matches, err := m.engine.cache.Search(ctx, c.RawArgs)
	if err != nil {
		return err
	}
	c.Logger.Debug("search finished", "matches", len(matches))

	if len(matches) == 0 {
		c.Logger.Info("no command matches input", "input", c.RawArgs)
		c.Result = CommandNotFoundResult{
			Input:       c.RawArgs,
			Suggestions: m.engine.cache.Suggest(c.RawArgs, m.engine.options.SuggestionDistance),
		}
		return nil
	}

	if len(matches) == 1 {
		match := matches[0]
		if !match.Command.IsEnabled() {
			c.Logger.Info("matched command is disabled", "command", match.Command)
			c.Result = CommandDisabledResult{Command: match.Command}
			return nil
		}
		c.Command = match.Command
		c.Match = &match
	}
	SetFeature(c, &MatchesFeature{Matches: matches})

	return next(ctx, c)
}
