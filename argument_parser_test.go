package cmdflow

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/napalu/cmdflow/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArgumentParser_Parse(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name      string
		params    func(t *testing.T) []*Parameter
		remaining string
		want      []any
		failure   ResultKind
	}{
		{
			name: "one token per parameter",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "a", intType), mustParameter(t, "b", stringType)}
			},
			remaining: "1 two",
			want:      []any{1, "two"},
		},
		{
			name: "duration and bool",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "d", reflect.TypeOf(time.Duration(0))), mustParameter(t, "b", reflect.TypeOf(false))}
			},
			remaining: "2s true",
			want:      []any{2 * time.Second, true},
		},
		{
			name: "default for missing token",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "a", intType), mustParameter(t, "b", intType, WithDefault(9))}
			},
			remaining: "1",
			want:      []any{1, 9},
		},
		{
			name: "variadic collects tokens",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "op", stringType), mustParameter(t, "n", reflect.TypeOf([]int{}), AsVariadic())}
			},
			remaining: "sum 1 2 3",
			want:      []any{"sum", []int{1, 2, 3}},
		},
		{
			name: "remainder rejoins tokens",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "to", stringType), mustParameter(t, "msg", stringType, AsRemainder())}
			},
			remaining: "bob see you  soon",
			want:      []any{"bob", "see you  soon"},
		},
		{
			name: "pointer bound from token",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "p", reflect.TypeOf((*string)(nil)))}
			},
			remaining: "x",
			want:      []any{strPtr("x")},
		},
		{
			name: "pointer without token is nil",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "p", reflect.TypeOf((*string)(nil)))}
			},
			remaining: "",
			want:      []any{(*string)(nil)},
		},
		{
			name: "missing required token",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "a", intType), mustParameter(t, "b", intType)}
			},
			remaining: "1",
			failure:   KindBadArgCount,
		},
		{
			name: "unparsable token",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "a", intType)}
			},
			remaining: "one",
			failure:   KindTypeParserFail,
		},
		{
			name: "unparsable variadic element",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "n", reflect.TypeOf([]int{}), AsVariadic())}
			},
			remaining: "1 x",
			failure:   KindTypeParserFail,
		},
		{
			name: "no parser",
			params: func(t *testing.T) []*Parameter {
				return []*Parameter{mustParameter(t, "ch", reflect.TypeOf(make(chan int)))}
			},
			remaining: "x",
			failure:   KindMissingTypeParser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := mustCommand(t, WithName("cmd"), WithParameters(tt.params(t)...), WithHandler(noop))

			res, err := DefaultArgumentParser{}.Parse(context.Background(), &CommandContext{}, cmd, tt.remaining)
			require.NoError(t, err)

			if tt.want == nil {
				require.False(t, res.Success())
				assert.Nil(t, res.Args)
				assert.Equal(t, tt.failure, res.Failure.Kind())
				return
			}

			require.True(t, res.Success(), "failure: %v", res.Failure)
			assert.Equal(t, tt.want, res.Args.Values())
		})
	}
}

func TestDefaultArgumentParser_Aborts(t *testing.T) {
	faulty := NewTypeParser(func(ctx context.Context, c *CommandContext, p *Parameter, token string) (int, error) {
		return 0, errs.Fault(errors.New("broken parser"))
	})
	e := mustEngine(t, WithTypeParser(intType, faulty))
	cmd := mustCommand(t, WithName("cmd"), WithParameter("n", intType), WithHandler(noop))

	_, err := DefaultArgumentParser{}.Parse(context.Background(), newCommandContext(e, "1"), cmd, "1")
	assert.True(t, errs.IsFault(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DefaultArgumentParser{}.Parse(ctx, &CommandContext{}, cmd, "1")
	assert.True(t, errors.Is(err, errs.ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDefaultArgumentParser_ParserReturnsWrongType(t *testing.T) {
	e := mustEngine(t, WithTypeParser(intType, TypeParserFunc(func(ctx context.Context, c *CommandContext, p *Parameter, token string) (any, error) {
		return "not an int", nil
	})))
	cmd := mustCommand(t, WithName("cmd"), WithParameter("n", intType), WithHandler(noop))

	res, err := DefaultArgumentParser{}.Parse(context.Background(), newCommandContext(e, "1"), cmd, "1")
	require.NoError(t, err)
	fail, ok := res.Failure.(TypeParserFailResult)
	require.True(t, ok, "got %T", res.Failure)
	assert.True(t, errors.Is(fail.Err, errs.ErrParseUnsupportedType))
}
