package cmdflow

import (
	"context"
	"errors"

	"github.com/napalu/cmdflow/errs"
)

// PipelineBuilder composes middleware into a CommandDelegate. Stages run in the order they
// are added: the first stage wraps all the others.
type PipelineBuilder struct {
	engine *Engine
	stages []Middleware
}

func newPipelineBuilder(e *Engine) *PipelineBuilder {
	return &PipelineBuilder{engine: e}
}

// Use appends a middleware function
func (b *PipelineBuilder) Use(fn func(ctx context.Context, c *CommandContext, next CommandDelegate) error) *PipelineBuilder {
	return b.UseMiddleware(MiddlewareFunc(fn))
}

// UseMiddleware appends a middleware
func (b *PipelineBuilder) UseMiddleware(m Middleware) *PipelineBuilder {
	b.stages = append(b.stages, m)
	return b
}

// UseLogging appends the stage logging every request and its outcome
func (b *PipelineBuilder) UseLogging() *PipelineBuilder {
	return b.UseMiddleware(&loggingMiddleware{})
}

// UseStringMatcher appends the stage searching the module cache
func (b *PipelineBuilder) UseStringMatcher() *PipelineBuilder {
	return b.UseMiddleware(&stringMatcherMiddleware{engine: b.engine})
}

// UseInputCountMatcher appends the stage narrowing ambiguous matches and screening
// candidates by token count
func (b *PipelineBuilder) UseInputCountMatcher() *PipelineBuilder {
	return b.UseMiddleware(&inputCountMiddleware{engine: b.engine})
}

// UsePreconditions appends the stage checking command and module preconditions
func (b *PipelineBuilder) UsePreconditions() *PipelineBuilder {
	return b.UseMiddleware(&preconditionMiddleware{})
}

// UseArgumentBinder appends the stage binding the arguments of the first candidate that
// parses
func (b *PipelineBuilder) UseArgumentBinder() *PipelineBuilder {
	return b.UseMiddleware(&argumentBinderMiddleware{engine: b.engine})
}

// UseCommandExecutor appends the stage invoking the bound command
func (b *PipelineBuilder) UseCommandExecutor() *PipelineBuilder {
	return b.UseMiddleware(&executorMiddleware{engine: b.engine})
}

// UseDefaults appends the built-in stages in their required order
func (b *PipelineBuilder) UseDefaults() *PipelineBuilder {
	return b.UseLogging().
		UseStringMatcher().
		UseInputCountMatcher().
		UsePreconditions().
		UseArgumentBinder().
		UseCommandExecutor()
}

// Build folds the stages into a single delegate
func (b *PipelineBuilder) Build() CommandDelegate {
	next := CommandDelegate(func(ctx context.Context, c *CommandContext) error {
		return nil
	})

	for i := len(b.stages) - 1; i >= 0; i-- {
		stage, inner := b.stages[i], next
		next = func(ctx context.Context, c *CommandContext) error {
			return stage.Invoke(ctx, c, inner)
		}
	}

	return next
}

// abortError returns the error to abort the pipeline with, or nil when err is an expected
// failure that should become a Result
func abortError(err error) error {
	switch {
	case errs.IsFault(err), errors.Is(err, errs.ErrCanceled):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errs.Canceled(err)
	}
	return nil
}

func matchesFeature(c *CommandContext) (*MatchesFeature, error) {
	f, ok := GetFeature[*MatchesFeature](c)
	if !ok || f == nil || len(f.Matches) == 0 {
		return nil, errs.Fault(errs.ErrMissingCommandMatches)
	}
	return f, nil
}
