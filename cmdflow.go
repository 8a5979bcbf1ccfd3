// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package cmdflow resolves free-form text input to a registered command and runs it.
//
// Commands are grouped in modules. Modules nest, and a command is addressed by the aliases
// of its module chain followed by one of its own aliases:
//
//	admin user add alice 42
//
// Every request runs through a pipeline of middleware. The default pipeline searches the
// module cache, narrows ambiguous matches, screens candidates by token count, checks
// preconditions, binds the remaining tokens to the command's parameters and finally
// invokes the command's handler. Expected failures (no match, ambiguity, bad input) are
// reported as a Result; errors returned by Execute are framework faults, cancellations or
// handler errors.
package cmdflow

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/napalu/cmdflow/errs"
)

// Engine is the single entry point for executing text commands. An Engine is safe for
// concurrent use; modules may be added and removed while requests are in flight.
type Engine struct {
	options        Options
	cache          *ModuleCache
	typeParsers    *TypeParserRegistry
	services       ServiceResolver
	argumentParser ArgumentParser
	logger         *log.Logger
	pipelineConfig func(b *PipelineBuilder)
	pipeline       CommandDelegate
	pending        []*Module
}

// NewEngine creates an Engine with DefaultOptions and the default pipeline
func NewEngine() *Engine {
	e, _ := NewEngineWith()
	return e
}

func newEngine() *Engine {
	return &Engine{
		options:        DefaultOptions(),
		typeParsers:    NewTypeParserRegistry(),
		services:       NewServiceProvider(),
		argumentParser: DefaultArgumentParser{},
		logger:         defaultLogger(),
	}
}

func logAsyncError(c *CommandContext, err error) {
	c.Logger.Error("detached command failed", "command", c.Command, "err", err)
}

// Execute runs input through the pipeline and returns its Result. A non-nil error means
// the request was aborted: a framework fault (errs.IsFault), a cancellation
// (errs.ErrCanceled) or an error returned by the handler.
func (e *Engine) Execute(ctx context.Context, input string, seeds ...ContextSeed) (Result, error) {
	c, err := e.ExecuteContext(ctx, input, seeds...)
	if err != nil {
		return nil, err
	}
	return c.Result, nil
}

// ExecuteContext behaves like Execute and returns the request's CommandContext, which
// exposes the resolved command and its bound arguments
func (e *Engine) ExecuteContext(ctx context.Context, input string, seeds ...ContextSeed) (*CommandContext, error) {
	if ctx == nil {
		return nil, errs.Fault(errs.ErrNilContext)
	}

	c := newCommandContext(e, input)
	for _, seed := range seeds {
		if seed != nil {
			seed(c)
		}
	}

	if err := e.pipeline(ctx, c); err != nil {
		return c, err
	}
	if c.Result == nil {
		return c, errs.Fault(errs.ErrNoResult)
	}

	return c, nil
}

// AddModule registers a root module
func (e *Engine) AddModule(m *Module) error {
	return e.cache.AddModule(m)
}

// RemoveModule unregisters a root module
func (e *Engine) RemoveModule(m *Module) error {
	return e.cache.RemoveModule(m)
}

// Modules returns the registered root modules in registration order
func (e *Engine) Modules() []*Module {
	return e.cache.Modules()
}

// Commands returns every registered command in registration order
func (e *Engine) Commands() []*Command {
	return e.cache.Commands()
}

// Cache returns the module cache
func (e *Engine) Cache() *ModuleCache {
	return e.cache
}

// TypeParsers returns the type parser registry
func (e *Engine) TypeParsers() *TypeParserRegistry {
	return e.typeParsers
}

// Services returns the default service resolver
func (e *Engine) Services() ServiceResolver {
	return e.services
}

// Logger returns the engine logger
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// Options returns a copy of the engine options
func (e *Engine) Options() Options {
	return e.options
}
