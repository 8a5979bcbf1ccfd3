package cmdflow

import (
	"context"
	"reflect"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/internal/util"
)

// Parameter is one formal argument of a command. A parameter binds one token, unless it is
// the last parameter and is marked as a remainder (all remaining input as one token) or as
// variadic (every remaining token, collected into a slice).
type Parameter struct {
	name           string
	description    string
	remarks        string
	typ            reflect.Type
	optional       bool
	defaultValue   any
	remainder      bool
	variadic       bool
	typeParserType reflect.Type
	preconditions  []ParameterPrecondition
	command        *Command
}

// NewParameter creates a parameter named name binding values of type typ
func NewParameter(name string, typ reflect.Type, configs ...ConfigureParameterFunc) (*Parameter, error) {
	p := &Parameter{
		name: name,
		typ:  typ,
	}

	if name == "" {
		return nil, errs.ErrEmptyName.WithArgs("parameter")
	}
	if typ == nil {
		return nil, errs.ErrNilParameterType.WithArgs(name)
	}

	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// NewParameterOf creates a parameter binding values of type T
func NewParameterOf[T any](name string, configs ...ConfigureParameterFunc) (*Parameter, error) {
	return NewParameter(name, reflect.TypeOf((*T)(nil)).Elem(), configs...)
}

// Name returns the parameter name
func (p *Parameter) Name() string { return p.name }

// Description returns the parameter description
func (p *Parameter) Description() string { return p.description }

// Remarks returns the parameter remarks
func (p *Parameter) Remarks() string { return p.remarks }

// Type returns the declared value type
func (p *Parameter) Type() reflect.Type { return p.typ }

// IsOptional reports whether the parameter has a default value
func (p *Parameter) IsOptional() bool { return p.optional }

// DefaultValue returns the value bound when no token is left for an optional parameter
func (p *Parameter) DefaultValue() any { return p.defaultValue }

// IsRemainder reports whether the parameter consumes all remaining input as one token
func (p *Parameter) IsRemainder() bool { return p.remainder }

// IsVariadic reports whether the parameter consumes every remaining token
func (p *Parameter) IsVariadic() bool { return p.variadic }

// IsNullable reports whether the declared type accepts an absent value. Such parameters are
// bound by calling their type parser with an empty token.
func (p *Parameter) IsNullable() bool { return p.typ.Kind() == reflect.Ptr }

// TypeParserType returns the type resolved through the service resolver to parse this
// parameter, or nil to use the type parser registry
func (p *Parameter) TypeParserType() reflect.Type { return p.typeParserType }

// Preconditions returns the checks run against the bound value
func (p *Parameter) Preconditions() []ParameterPrecondition { return p.preconditions }

// Command returns the command owning the parameter
func (p *Parameter) Command() *Command { return p.command }

// ValueType returns the type handled by the parameter's type parser: the element type for
// variadic parameters and the declared type otherwise
func (p *Parameter) ValueType() reflect.Type {
	if p.variadic {
		return p.typ.Elem()
	}
	return p.typ
}

// coverable reports whether a missing token can be tolerated for this parameter
func (p *Parameter) coverable(opts *Options) bool {
	return p.optional || p.variadic || p.IsNullable() || p.classNullable(opts)
}

func (p *Parameter) classNullable(opts *Options) bool {
	return opts.ClassTypesNullable && util.IsClassType(p.typ)
}

// ParameterPrecondition checks the value bound to a parameter. Returning an error rejects
// the command with a PreconditionFailResult.
type ParameterPrecondition interface {
	Name() string
	Check(ctx context.Context, c *CommandContext, p *Parameter, value any) error
}

type parameterPreconditionFunc struct {
	name string
	fn   func(ctx context.Context, c *CommandContext, p *Parameter, value any) error
}

// ParameterPreconditionFunc creates a named ParameterPrecondition from fn
func ParameterPreconditionFunc(name string, fn func(ctx context.Context, c *CommandContext, p *Parameter, value any) error) ParameterPrecondition {
	return &parameterPreconditionFunc{name: name, fn: fn}
}

func (p *parameterPreconditionFunc) Name() string { return p.name }

func (p *parameterPreconditionFunc) Check(ctx context.Context, c *CommandContext, param *Parameter, value any) error {
	return p.fn(ctx, c, param, value)
}
