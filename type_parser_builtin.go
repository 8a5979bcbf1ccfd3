package cmdflow

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/internal/util"
)

type convertTypeParser struct {
	typ reflect.Type
}

func (p *convertTypeParser) Parse(ctx context.Context, c *CommandContext, param *Parameter, token string) (any, error) {
	return util.ConvertString(token, p.typ)
}

// pointerTypeParser binds nil for an empty token and otherwise the address of the value
// parsed by the element type's parser
type pointerTypeParser struct {
	typ   reflect.Type
	inner TypeParser
}

func (p *pointerTypeParser) Parse(ctx context.Context, c *CommandContext, param *Parameter, token string) (any, error) {
	if token == "" {
		return reflect.Zero(p.typ).Interface(), nil
	}

	v, err := p.inner.Parse(ctx, c, param, token)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(p.typ.Elem())
	val := reflect.ValueOf(v)
	if !val.IsValid() || !val.Type().AssignableTo(p.typ.Elem()) {
		return nil, errs.ErrParseUnsupportedType.WithArgs(p.typ.String())
	}
	ptr.Elem().Set(val)
	return ptr.Interface(), nil
}

type enumTypeParser[T comparable] struct {
	names  []string
	values map[string]T
}

// NewEnumTypeParser returns a TypeParser accepting the names of values. Names are compared
// with the engine's Comparison and are also accepted in kebab case, so a value named
// "DryRun" matches "dry-run". For integer types the numeric value is accepted as well.
func NewEnumTypeParser[T comparable](values map[string]T) TypeParser {
	e := &enumTypeParser[T]{values: make(map[string]T, len(values))}
	for name, v := range values {
		e.names = append(e.names, name)
		e.values[name] = v
	}
	sort.Strings(e.names)
	return e
}

// RegisterEnum registers an enum parser for T
func RegisterEnum[T comparable](r *TypeParserRegistry, values map[string]T) {
	r.Register(TypeOf[T](), NewEnumTypeParser(values))
}

func (e *enumTypeParser[T]) Parse(ctx context.Context, c *CommandContext, p *Parameter, token string) (any, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errs.ErrParseEmptyInput
	}

	equal := newComparer(c.Options().Comparison)
	for _, name := range e.names {
		if equal(token, name) || equal(token, strcase.ToKebab(name)) {
			return e.values[name], nil
		}
	}

	if v, ok := e.byNumber(token); ok {
		return v, nil
	}

	return nil, errs.ErrParseEnum.WithArgs(token, strings.Join(e.names, ", "))
}

func (e *enumTypeParser[T]) byNumber(token string) (T, bool) {
	var zero T
	t := TypeOf[T]()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _, err := util.ParseInt(token, t.Bits())
		if err != nil {
			return zero, false
		}
		for _, name := range e.names {
			if reflect.ValueOf(e.values[name]).Int() == n {
				return e.values[name], true
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _, err := util.ParseUint(token, t.Bits())
		if err != nil {
			return zero, false
		}
		for _, name := range e.names {
			if reflect.ValueOf(e.values[name]).Uint() == n {
				return e.values[name], true
			}
		}
	}
	return zero, false
}
