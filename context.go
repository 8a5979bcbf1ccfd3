package cmdflow

import (
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// CommandContext is the per-request state shared by the pipeline stages. It is created by
// Engine.Execute and must not be shared between requests.
type CommandContext struct {
	// RequestID identifies the request in log output
	RequestID uuid.UUID
	// RawArgs is the raw input of the request
	RawArgs string
	// Command is the resolved command. It may be seeded to skip the search.
	Command *Command
	// Match is the match the command was resolved from. A seeded command gets a match with
	// an empty Alias whose Remaining is the raw input.
	Match *CommandMatch
	// Args holds the bound arguments once the argument binder succeeded
	Args *Arguments
	// Result is the outcome. Once set, the remaining matching and binding stages are skipped.
	Result Result
	// Services resolves type parsers, argument parsers and preconditions by type
	Services ServiceResolver
	// Logger is the engine logger annotated with the request id
	Logger *log.Logger
	// Items is a free-form side channel for custom stages
	Items map[string]any

	features map[reflect.Type]any
	engine   *Engine
}

func newCommandContext(e *Engine, input string) *CommandContext {
	id := uuid.New()
	return &CommandContext{
		RequestID: id,
		RawArgs:   input,
		Services:  e.services,
		Logger:    e.logger.With("request", id.String()),
		Items:     make(map[string]any),
		features:  make(map[reflect.Type]any),
		engine:    e,
	}
}

// Options returns the options of the engine running the request
func (c *CommandContext) Options() Options {
	if c.engine == nil {
		return DefaultOptions()
	}
	return c.engine.options
}

// TypeParsers returns the type parser registry of the engine running the request
func (c *CommandContext) TypeParsers() *TypeParserRegistry {
	if c.engine == nil {
		return defaultTypeParsers
	}
	return c.engine.typeParsers
}

var defaultTypeParsers = NewTypeParserRegistry()

// SetFeature stores v on c under its type T
func SetFeature[T any](c *CommandContext, v T) {
	if c.features == nil {
		c.features = make(map[reflect.Type]any)
	}
	c.features[TypeOf[T]()] = v
}

// GetFeature returns the value stored on c under type T
func GetFeature[T any](c *CommandContext) (T, bool) {
	v, ok := c.features[TypeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// DeleteFeature removes the value stored on c under type T
func DeleteFeature[T any](c *CommandContext) {
	delete(c.features, TypeOf[T]())
}

// MatchesFeature carries the candidates still in play between the matching stages
type MatchesFeature struct {
	Matches []CommandMatch
}

// Arg returns the value bound to the parameter named name converted to T
func Arg[T any](c *CommandContext, name string) (T, bool) {
	var zero T
	if c.Args == nil {
		return zero, false
	}
	v, ok := c.Args.Get(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// WithSeedCommand seeds the command so that the search is skipped and the raw input is
// treated as the command's arguments
func WithSeedCommand(cmd *Command) ContextSeed {
	return func(c *CommandContext) {
		c.Command = cmd
	}
}

// WithSeedServices replaces the engine's service resolver for one request
func WithSeedServices(services ServiceResolver) ContextSeed {
	return func(c *CommandContext) {
		c.Services = services
	}
}

// WithSeedItem stores an item on the context before the pipeline runs
func WithSeedItem(key string, value any) ContextSeed {
	return func(c *CommandContext) {
		c.Items[key] = value
	}
}

// WithSeedResult pre-empts every matching, binding and executing stage with r
func WithSeedResult(r Result) ContextSeed {
	return func(c *CommandContext) {
		c.Result = r
	}
}
