package cmdflow

import (
	"context"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/internal/parse"
	"github.com/napalu/cmdflow/types"
	"github.com/napalu/cmdflow/types/orderedmap"
)

type inputCountMiddleware struct {
	engine *Engine
}

func (m *inputCountMiddleware) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	if c.Result != nil || c.Args != nil {
		return next(ctx, c)
	}

	opts := &m.engine.options
	feature, ok := GetFeature[*MatchesFeature](c)
	switch {
	case ok && feature != nil && len(feature.Matches) > 0:
	case c.Command != nil:
		feature = &MatchesFeature{Matches: []CommandMatch{{Command: c.Command, Remaining: c.RawArgs}}}
		SetFeature(c, feature)
	default:
		return errs.Fault(errs.ErrMissingCommandMatches)
	}

	matches := feature.Matches
	if len(matches) > 1 {
		best := make([]CommandMatch, 0, len(matches))
		for _, match := range matches {
			if match.Command.EffectiveMultiMatch(opts) == types.MultiMatchBest {
				best = append(best, match)
			}
		}
		if len(best) == 0 {
			c.Logger.Info("input matches several commands and none allows best match", "matches", len(matches))
			c.Result = MultiMatchResult{Matches: matches}
			return nil
		}
		matches = best
	}

	tok := parse.Tokenizer{Separator: opts.Separator, Quoted: opts.QuotedTokens}
	failures := orderedmap.New[*Command, Result]()
	passed := make([]CommandMatch, 0, len(matches))
	for _, match := range matches {
		if !match.Command.IsEnabled() {
			failures.Set(match.Command, CommandDisabledResult{Command: match.Command})
			continue
		}
		if !screenInputCount(tok, match, opts) {
			failures.Set(match.Command, BadArgCountResult{Command: match.Command})
			continue
		}
		passed = append(passed, match)
	}

	if len(passed) == 0 {
		c.Logger.Info("every candidate is disabled or failed the argument count check", "candidates", failures.Len())
		c.Result = failureResult(failures)
		return nil
	}

	feature.Matches = passed
	return next(ctx, c)
}

// screenInputCount reports whether the tokens left after the alias can be bound to the
// command's parameters. A shortfall must be covered by at least as many parameters that
// tolerate a missing token; a surplus needs a trailing remainder or variadic parameter or
// the ignore-extra-args flag.
func screenInputCount(tok parse.Tokenizer, match CommandMatch, opts *Options) bool {
	count, err := tok.Count(match.Remaining)
	if err != nil {
		return false
	}

	cmd := match.Command
	params := len(cmd.parameters)
	switch {
	case count < params:
		coverable := 0
		for _, p := range cmd.parameters {
			if p.coverable(opts) {
				coverable++
			}
		}
		return coverable >= params-count
	case count > params:
		return cmd.absorbsExtraTokens() || cmd.EffectiveIgnoreExtraArgs(opts)
	}
	return true
}
