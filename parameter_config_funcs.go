package cmdflow

import (
	"reflect"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/internal/util"
)

// WithParameterDescription sets the description shown for the parameter
func WithParameterDescription(description string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.description = description
	}
}

// WithParameterRemarks sets additional remarks for the parameter
func WithParameterRemarks(remarks string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.remarks = remarks
	}
}

// WithDefault makes the parameter optional and binds value when no token is left for it.
// value must be assignable to the parameter type; nil is accepted for types that can hold nil.
func WithDefault(value any) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		if value == nil {
			if !util.IsNilable(p.typ) {
				*err = errs.ErrInvalidDefault.WithArgs(value, p.name, p.typ)
				return
			}
		} else if !reflect.TypeOf(value).AssignableTo(p.typ) {
			*err = errs.ErrInvalidDefault.WithArgs(value, p.name, p.typ)
			return
		}

		p.optional = true
		p.defaultValue = value
	}
}

// AsOptional makes the parameter optional with the zero value of its type as default
func AsOptional() ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.optional = true
		p.defaultValue = reflect.Zero(p.typ).Interface()
	}
}

// AsRemainder makes the parameter consume all remaining input, separators included, as one
// token. Only the last parameter of a command may be a remainder.
func AsRemainder() ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.remainder = true
	}
}

// AsVariadic makes the parameter consume every remaining token. The parameter type must be
// a slice; each token is parsed as the slice element type. Only the last parameter of a
// command may be variadic.
func AsVariadic() ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		if p.typ.Kind() != reflect.Slice {
			*err = errs.ErrInvalidParameterLayout.WithArgs(p.name, "variadic parameter must be a slice, got "+p.typ.String())
			return
		}
		p.variadic = true
	}
}

// WithParameterTypeParser parses the parameter with the TypeParser resolved for typeParserType
// through the service resolver instead of the type parser registry
func WithParameterTypeParser(typeParserType reflect.Type) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.typeParserType = typeParserType
	}
}

// WithParameterPreconditions adds checks run against the bound value
func WithParameterPreconditions(preconditions ...ParameterPrecondition) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.preconditions = append(p.preconditions, preconditions...)
	}
}
