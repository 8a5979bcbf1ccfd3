package cmdflow

import (
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/iancoleman/strcase"
	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/i18n"
	"github.com/napalu/cmdflow/types"
	"golang.org/x/text/language"
)

// NewEngineWith creates an Engine configured by configs. Options are applied in order;
// modules given with WithModules are registered once every option has been applied. The
// caller should always test for error on return because Engine will be nil when an error
// occurs during initialization.
//
// Configuration example:
//
//	engine, err := NewEngineWith(
//		WithComparison(types.IgnoreCase),
//		WithDefaultMultiMatch(types.MultiMatchBest),
//		WithLogLevel("debug"),
//		WithModules(adminModule, userModule))
func NewEngineWith(configs ...ConfigureEngineFunc) (*Engine, error) {
	e := newEngine()

	var err error
	for _, config := range configs {
		config(e, &err)
		if err != nil {
			return nil, errs.ErrConfiguringEngine.Wrap(err)
		}
	}

	if e.options.Separator == "" {
		return nil, errs.ErrConfiguringEngine.Wrap(errs.ErrInvalidSeparator)
	}
	if e.options.AsyncErrorHandler == nil {
		e.options.AsyncErrorHandler = logAsyncError
	}

	e.cache = NewModuleCache(e.options)

	b := newPipelineBuilder(e)
	if e.pipelineConfig != nil {
		e.pipelineConfig(b)
	} else {
		b.UseDefaults()
	}
	e.pipeline = b.Build()

	for _, m := range e.pending {
		if err := e.cache.AddModule(m); err != nil {
			return nil, errs.ErrConfiguringEngine.Wrap(err)
		}
	}
	e.pending = nil

	return e, nil
}

// WithOptions replaces every option at once
func WithOptions(opts Options) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options = opts
	}
}

// WithSeparator sets the string splitting input into tokens. It must not be empty.
func WithSeparator(separator string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if separator == "" {
			*err = errs.ErrInvalidSeparator
			return
		}
		e.options.Separator = separator
	}
}

// WithComparison sets how aliases and enum names are compared with input
func WithComparison(comparison types.Comparison) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.Comparison = comparison
	}
}

// WithDefaultRunMode sets the run mode of commands whose module chain sets none
func WithDefaultRunMode(mode types.RunMode) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.RunMode = mode
	}
}

// WithDefaultIgnoreExtraArgs sets whether surplus tokens are accepted when no module in a
// command's chain decides
func WithDefaultIgnoreExtraArgs(value bool) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.IgnoreExtraArgs = value
	}
}

// WithDefaultMultiMatch sets the multi-match policy of commands whose module chain sets none
func WithDefaultMultiMatch(policy types.MultiMatchPolicy) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.MultiMatch = policy
	}
}

// WithClassTypesNullable binds the zero value to missing struct, interface, map and slice
// parameters
func WithClassTypesNullable(value bool) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.ClassTypesNullable = value
	}
}

// WithQuotedTokens splits argument input with shell quoting rules, so that
// `say "hello world"` binds a single token
func WithQuotedTokens(value bool) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.QuotedTokens = value
	}
}

// WithSuggestionDistance sets the maximum edit distance of suggested aliases. Zero disables
// suggestions.
func WithSuggestionDistance(distance int) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.SuggestionDistance = distance
	}
}

// WithPanicRecovery converts handler panics to errs.ErrHandlerPanic errors
func WithPanicRecovery(value bool) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.PanicRecovery = value
	}
}

// WithAsyncErrorHandler sets the function receiving failures of detached commands
func WithAsyncErrorHandler(handler AsyncErrorHandler) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.AsyncErrorHandler = handler
	}
}

// WithAliasConverter rewrites every alias token before it is indexed
func WithAliasConverter(converter func(string) string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.options.AliasConverter = converter
	}
}

// KebabCaseAliases indexes aliases in kebab case, so that a command named "AddUser" is
// matched by "add-user"
func KebabCaseAliases() ConfigureEngineFunc {
	return WithAliasConverter(strcase.ToKebab)
}

// WithLogger replaces the engine logger
func WithLogger(logger *log.Logger) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLogLevel sets the level of the engine logger by name (debug, info, warn, error, fatal)
func WithLogLevel(level string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		lvl, e2 := log.ParseLevel(level)
		if e2 != nil {
			*err = errs.ErrInvalidOptionValue.WithArgs(level, "log level").Wrap(e2)
			return
		}
		e.logger.SetLevel(lvl)
	}
}

// WithServices sets the service resolver used for type parser, argument parser and
// precondition overrides
func WithServices(services ServiceResolver) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if services != nil {
			e.services = services
		}
	}
}

// WithTypeParser registers parser for values of type t
func WithTypeParser(t reflect.Type, parser TypeParser) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.typeParsers.Register(t, parser)
	}
}

// WithTypeParsers replaces the type parser registry
func WithTypeParsers(registry *TypeParserRegistry) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if registry != nil {
			e.typeParsers = registry
		}
	}
}

// WithDefaultArgumentParser sets the argument parser of commands that do not override it
func WithDefaultArgumentParser(parser ArgumentParser) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if parser != nil {
			e.argumentParser = parser
		}
	}
}

// WithPipeline replaces the default pipeline. configure receives an empty builder; call
// UseDefaults to keep the built-in stages.
func WithPipeline(configure func(b *PipelineBuilder)) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.pipelineConfig = configure
	}
}

// WithModules registers root modules once the engine is configured
func WithModules(modules ...*Module) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		for _, m := range modules {
			if m == nil {
				*err = errs.ErrNilModule
				return
			}
		}
		e.pending = append(e.pending, modules...)
	}
}

// WithLanguage renders errors and result reasons in lang. The setting is process-wide.
func WithLanguage(lang language.Tag) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		bundle := i18n.Default()
		if !bundle.HasLanguage(lang) {
			*err = errs.ErrInvalidOptionValue.WithArgs(lang.String(), "language")
			return
		}
		i18n.SetDefaultMessageProvider(i18n.NewBundleMessageProvider(bundle, lang))
	}
}
