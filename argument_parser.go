package cmdflow

import (
	"context"
	"iter"
	"reflect"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/internal/parse"
	"github.com/napalu/cmdflow/internal/util"
	"github.com/napalu/cmdflow/types/orderedmap"
)

// Arguments maps parameters to their bound values in declaration order
type Arguments struct {
	values *orderedmap.OrderedMap[*Parameter, any]
}

// NewArguments creates an empty argument set
func NewArguments() *Arguments {
	return &Arguments{values: orderedmap.New[*Parameter, any]()}
}

// Set binds value to p
func (a *Arguments) Set(p *Parameter, value any) {
	a.values.Set(p, value)
}

// Lookup returns the value bound to p
func (a *Arguments) Lookup(p *Parameter) (any, bool) {
	return a.values.Get(p)
}

// Get returns the value bound to the parameter named name
func (a *Arguments) Get(name string) (any, bool) {
	for p, v := range a.values.All() {
		if p.name == name {
			return v, true
		}
	}
	return nil, false
}

// Len returns the number of bound parameters
func (a *Arguments) Len() int { return a.values.Len() }

// All iterates over the bound parameters in declaration order
func (a *Arguments) All() iter.Seq2[*Parameter, any] { return a.values.All() }

// Values returns the bound values in declaration order
func (a *Arguments) Values() []any { return a.values.Values() }

// ArgumentParseResult is either a set of bound arguments or the Result explaining why the
// input could not be bound. There is no partial success.
type ArgumentParseResult struct {
	Args    *Arguments
	Failure Result
}

// Success reports whether every parameter was bound
func (r ArgumentParseResult) Success() bool { return r.Failure == nil }

func parseFailure(r Result) (ArgumentParseResult, error) {
	return ArgumentParseResult{Failure: r}, nil
}

// ArgumentParser binds the input left after a command's alias to the command's parameters.
// Expected failures are reported in the ArgumentParseResult; a returned error aborts the
// request.
type ArgumentParser interface {
	Parse(ctx context.Context, c *CommandContext, cmd *Command, remaining string) (ArgumentParseResult, error)
}

// DefaultArgumentParser binds one token per parameter in declaration order. A trailing
// variadic parameter collects every remaining token, each parsed as the element type; a
// trailing remainder parameter receives the remaining tokens rejoined with the separator.
//
// Parameters left without a token are bound, in order of precedence, to their default
// value, to an empty slice when variadic, to the result of parsing an empty token when
// their type is a pointer, and to the zero value when Options.ClassTypesNullable is set
// and their type is a struct, interface, map or slice. Anything else fails with
// BadArgCountResult.
type DefaultArgumentParser struct{}

// Parse implements ArgumentParser
func (DefaultArgumentParser) Parse(ctx context.Context, c *CommandContext, cmd *Command, remaining string) (ArgumentParseResult, error) {
	opts := c.Options()
	tok := parse.Tokenizer{Separator: opts.Separator, Quoted: opts.QuotedTokens}
	tokens, err := tok.Split(remaining)
	if err != nil {
		return parseFailure(BadArgCountResult{Command: cmd})
	}

	args := NewArguments()
	last := len(cmd.parameters) - 1
	for i, p := range cmd.parameters {
		if i >= len(tokens) {
			failure, err := bindMissing(ctx, c, p, args, &opts)
			if err != nil || failure != nil {
				return ArgumentParseResult{Failure: failure}, err
			}
			continue
		}

		parser, failure, err := typeParserFor(c, p)
		if err != nil || failure != nil {
			return ArgumentParseResult{Failure: failure}, err
		}

		switch {
		case i == last && p.variadic:
			values := reflect.MakeSlice(p.typ, 0, len(tokens)-i)
			for _, t := range tokens[i:] {
				v, failure, err := parseToken(ctx, c, p, parser, t, p.typ.Elem())
				if err != nil || failure != nil {
					return ArgumentParseResult{Failure: failure}, err
				}
				values = reflect.Append(values, v)
			}
			args.Set(p, values.Interface())
		default:
			token := tokens[i]
			if i == last && p.remainder {
				token = tok.Join(tokens[i:])
			}
			v, failure, err := parseToken(ctx, c, p, parser, token, p.typ)
			if err != nil || failure != nil {
				return ArgumentParseResult{Failure: failure}, err
			}
			args.Set(p, v.Interface())
		}
	}

	return ArgumentParseResult{Args: args}, nil
}

func bindMissing(ctx context.Context, c *CommandContext, p *Parameter, args *Arguments, opts *Options) (Result, error) {
	switch {
	case p.optional:
		args.Set(p, p.defaultValue)
	case p.variadic:
		args.Set(p, reflect.MakeSlice(p.typ, 0, 0).Interface())
	case p.IsNullable():
		parser, failure, err := typeParserFor(c, p)
		if err != nil || failure != nil {
			return failure, err
		}
		v, failure, err := parseToken(ctx, c, p, parser, "", p.typ)
		if err != nil || failure != nil {
			return failure, err
		}
		args.Set(p, v.Interface())
	case p.classNullable(opts):
		args.Set(p, reflect.Zero(p.typ).Interface())
	default:
		return BadArgCountResult{Command: p.command}, nil
	}
	return nil, nil
}

// typeParserFor resolves the parser of p: the per-parameter override through the service
// resolver, else the registry entry for the parameter's value type
func typeParserFor(c *CommandContext, p *Parameter) (TypeParser, Result, error) {
	if t := p.typeParserType; t != nil {
		inst, err := resolveService(c, t)
		if err != nil {
			return nil, MissingTypeParserResult{Parameter: p}, nil
		}
		parser, ok := inst.(TypeParser)
		if !ok {
			return nil, nil, errs.Fault(errs.ErrServiceTypeMismatch.WithArgs(reflect.TypeOf(inst), "cmdflow.TypeParser"))
		}
		return parser, nil, nil
	}

	if parser, ok := c.TypeParsers().Lookup(p.ValueType()); ok {
		return parser, nil, nil
	}
	return nil, MissingTypeParserResult{Parameter: p}, nil
}

func parseToken(ctx context.Context, c *CommandContext, p *Parameter, parser TypeParser, token string, want reflect.Type) (reflect.Value, Result, error) {
	if err := ctx.Err(); err != nil {
		return reflect.Value{}, nil, errs.Canceled(err)
	}

	v, err := parser.Parse(ctx, c, p, token)
	if err != nil {
		if abort := abortError(err); abort != nil {
			return reflect.Value{}, nil, abort
		}
		return reflect.Value{}, TypeParserFailResult{Parameter: p, Token: token, Err: err}, nil
	}

	if v == nil {
		if util.IsNilable(want) {
			return reflect.Zero(want), nil, nil
		}
		return reflect.Value{}, TypeParserFailResult{Parameter: p, Token: token, Err: errs.ErrParseUnsupportedType.WithArgs(want.String())}, nil
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(want) {
		return reflect.Value{}, TypeParserFailResult{Parameter: p, Token: token, Err: errs.ErrParseUnsupportedType.WithArgs(want.String())}, nil
	}
	return rv, nil, nil
}
