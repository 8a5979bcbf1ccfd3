package cmdflow

import (
	"context"
	"reflect"
	"sync"

	"github.com/napalu/cmdflow/internal/util"
)

// TypeParser converts one token to a value of a parameter's value type. A returned error
// becomes a TypeParserFailResult unless it is a framework fault or a cancellation.
type TypeParser interface {
	Parse(ctx context.Context, c *CommandContext, p *Parameter, token string) (any, error)
}

// TypeParserFunc adapts a function to the TypeParser interface
type TypeParserFunc func(ctx context.Context, c *CommandContext, p *Parameter, token string) (any, error)

// Parse calls f
func (f TypeParserFunc) Parse(ctx context.Context, c *CommandContext, p *Parameter, token string) (any, error) {
	return f(ctx, c, p, token)
}

// NewTypeParser adapts a function returning a concrete type to a TypeParser
func NewTypeParser[T any](fn func(ctx context.Context, c *CommandContext, p *Parameter, token string) (T, error)) TypeParser {
	return TypeParserFunc(func(ctx context.Context, c *CommandContext, p *Parameter, token string) (any, error) {
		v, err := fn(ctx, c, p, token)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// TypeParserRegistry maps value types to type parsers. Lookups fall back to a pointer
// wrapper around the element type's parser for pointer types, and to the built-in text
// conversions for strings, booleans, numbers, durations, times, UUIDs and any type
// implementing encoding.TextUnmarshaler.
type TypeParserRegistry struct {
	mu      sync.RWMutex
	parsers map[reflect.Type]TypeParser
}

// NewTypeParserRegistry creates a registry with only the built-in conversions
func NewTypeParserRegistry() *TypeParserRegistry {
	return &TypeParserRegistry{parsers: make(map[reflect.Type]TypeParser)}
}

// Register sets the parser for t, replacing any previous registration
func (r *TypeParserRegistry) Register(t reflect.Type, parser TypeParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[t] = parser
}

// Unregister removes the parser registered for t
func (r *TypeParserRegistry) Unregister(t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.parsers, t)
}

// RegisterTypeParser registers fn as the parser for T
func RegisterTypeParser[T any](r *TypeParserRegistry, fn func(ctx context.Context, c *CommandContext, p *Parameter, token string) (T, error)) {
	r.Register(TypeOf[T](), NewTypeParser(fn))
}

// Lookup returns the parser for t
func (r *TypeParserRegistry) Lookup(t reflect.Type) (TypeParser, bool) {
	if t == nil {
		return nil, false
	}

	r.mu.RLock()
	parser, ok := r.parsers[t]
	r.mu.RUnlock()
	if ok {
		return parser, true
	}

	if t.Kind() == reflect.Ptr {
		if inner, ok := r.Lookup(t.Elem()); ok {
			return &pointerTypeParser{typ: t, inner: inner}, true
		}
		return nil, false
	}

	if util.CanConvert(t) {
		return &convertTypeParser{typ: t}, true
	}

	return nil, false
}
