package cmdflow

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/napalu/cmdflow/types"
)

// Options holds the engine-wide defaults consulted whenever a module or command leaves a
// policy unset, together with the knobs that shape matching and binding.
type Options struct {
	// Separator splits input into tokens and is re-inserted when a remainder is rejoined
	Separator string
	// Comparison decides how aliases and enum names are compared with input
	Comparison types.Comparison
	// RunMode is the fallback run mode
	RunMode types.RunMode
	// IgnoreExtraArgs is the fallback for accepting more tokens than parameters
	IgnoreExtraArgs bool
	// MultiMatch is the fallback multi-match policy
	MultiMatch types.MultiMatchPolicy
	// ClassTypesNullable binds the zero value to missing struct, interface, map and
	// slice parameters that are neither optional nor pointers
	ClassTypesNullable bool
	// QuotedTokens splits argument input with shell quoting rules
	QuotedTokens bool
	// SuggestionDistance is the maximum edit distance of aliases suggested when no command
	// matches. Zero or less disables suggestions.
	SuggestionDistance int
	// PanicRecovery converts handler panics to errs.ErrHandlerPanic errors
	PanicRecovery bool
	// AsyncErrorHandler receives the error or recovered panic of handlers started with
	// types.RunModeConcurrent
	AsyncErrorHandler AsyncErrorHandler
	// AliasConverter, when set, rewrites every alias token before it is indexed
	AliasConverter func(string) string
}

// AsyncErrorHandler is called with the context of a fire-and-forget command whose handler failed
type AsyncErrorHandler func(c *CommandContext, err error)

// DefaultOptions returns the options used by NewEngine
func DefaultOptions() Options {
	return Options{
		Separator:          " ",
		Comparison:         types.Ordinal,
		RunMode:            types.RunModeSequential,
		MultiMatch:         types.MultiMatchError,
		SuggestionDistance: 2,
	}
}

// ConfigureEngineFunc is used when calling NewEngineWith to configure an Engine
type ConfigureEngineFunc func(e *Engine, err *error)

// ConfigureModuleFunc is used when calling NewModule to configure a Module
type ConfigureModuleFunc func(m *Module, err *error)

// ConfigureCommandFunc is used when calling NewCommand to configure a Command
type ConfigureCommandFunc func(c *Command, err *error)

// ConfigureParameterFunc is used when calling NewParameter to configure a Parameter
type ConfigureParameterFunc func(p *Parameter, err *error)

// ContextSeed pre-populates a CommandContext before the pipeline runs
type ContextSeed func(c *CommandContext)

// CommandDelegate is a built pipeline, or the rest of one as seen from a middleware
type CommandDelegate func(ctx context.Context, c *CommandContext) error

// Middleware is one stage of the pipeline. A stage continues the pipeline by calling next
// and short-circuits it by returning without doing so.
type Middleware interface {
	Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error
}

// MiddlewareFunc adapts a function to the Middleware interface
type MiddlewareFunc func(ctx context.Context, c *CommandContext, next CommandDelegate) error

// Invoke calls f
func (f MiddlewareFunc) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	return f(ctx, c, next)
}

func defaultLogger() *log.Logger {
	return newLogger(log.WarnLevel)
}
