package cmdflow

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

const (
	levelLow level = iota + 1
	levelHigh
	levelDryRun
)

var levelNames = map[string]level{
	"Low":    levelLow,
	"High":   levelHigh,
	"DryRun": levelDryRun,
}

func TestTypeParserRegistry_Lookup(t *testing.T) {
	r := NewTypeParserRegistry()
	RegisterTypeParser(r, func(ctx context.Context, c *CommandContext, p *Parameter, token string) (int, error) {
		return len(token), nil
	})

	c := &CommandContext{}
	p := mustParameter(t, "p", intType)

	t.Run("exact registration wins over conversion", func(t *testing.T) {
		parser, ok := r.Lookup(intType)
		require.True(t, ok)
		v, err := parser.Parse(context.Background(), c, p, "abcd")
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	})

	t.Run("pointer wraps element parser", func(t *testing.T) {
		parser, ok := r.Lookup(reflect.TypeOf((*int)(nil)))
		require.True(t, ok)

		v, err := parser.Parse(context.Background(), c, p, "abc")
		require.NoError(t, err)
		require.IsType(t, (*int)(nil), v)
		assert.Equal(t, 3, *v.(*int))

		v, err = parser.Parse(context.Background(), c, p, "")
		require.NoError(t, err)
		assert.Nil(t, v.(*int))
	})

	t.Run("built-in conversion", func(t *testing.T) {
		parser, ok := r.Lookup(reflect.TypeOf(time.Duration(0)))
		require.True(t, ok)
		v, err := parser.Parse(context.Background(), c, p, "1m30s")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, v)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, ok := r.Lookup(reflect.TypeOf(make(chan int)))
		assert.False(t, ok)
		_, ok = r.Lookup(reflect.TypeOf((*chan int)(nil)))
		assert.False(t, ok)
		_, ok = r.Lookup(nil)
		assert.False(t, ok)
	})

	t.Run("unregister restores conversion", func(t *testing.T) {
		r.Unregister(intType)
		parser, ok := r.Lookup(intType)
		require.True(t, ok)
		v, err := parser.Parse(context.Background(), c, p, "12")
		require.NoError(t, err)
		assert.Equal(t, 12, v)

		_, err = parser.Parse(context.Background(), c, p, "twelve")
		assert.True(t, errors.Is(err, errs.ErrParseInt))
	})
}

func TestEnumTypeParser(t *testing.T) {
	parser := NewEnumTypeParser(levelNames)
	p := mustParameter(t, "level", reflect.TypeOf(level(0)))

	ordinal := &CommandContext{}
	e := mustEngine(t, WithComparison(types.IgnoreCase))
	folded := newCommandContext(e, "")

	tests := []struct {
		name    string
		c       *CommandContext
		token   string
		want    level
		wantErr error
	}{
		{name: "exact", c: ordinal, token: "High", want: levelHigh},
		{name: "kebab", c: ordinal, token: "dry-run", want: levelDryRun},
		{name: "numeric", c: ordinal, token: "1", want: levelLow},
		{name: "case sensitive", c: ordinal, token: "HIGH", wantErr: errs.ErrParseEnum},
		{name: "ignore case", c: folded, token: "HIGH", want: levelHigh},
		{name: "ignore case kebab", c: folded, token: "Dry-Run", want: levelDryRun},
		{name: "unknown number", c: ordinal, token: "9", wantErr: errs.ErrParseEnum},
		{name: "empty", c: ordinal, token: " ", wantErr: errs.ErrParseEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parser.Parse(context.Background(), tt.c, p, tt.token)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestEngine_EnumParameter(t *testing.T) {
	cmd := mustCommand(t,
		WithName("set"),
		WithParameter("level", reflect.TypeOf(level(0))),
		WithHandler(echoArgs))
	e := mustEngine(t, WithModules(mustModule(t, WithModuleName("m"), WithCommands(cmd))))
	RegisterEnum(e.TypeParsers(), levelNames)

	res, err := e.Execute(context.Background(), "set dry-run")
	require.NoError(t, err)
	assert.Equal(t, PayloadResult{Value: []any{levelDryRun}}, res)

	res, err = e.Execute(context.Background(), "set extreme")
	require.NoError(t, err)
	fail, ok := res.(TypeParserFailResult)
	require.True(t, ok, "got %T", res)
	assert.Equal(t, "extreme", fail.Token)
	assert.True(t, errors.Is(fail.Err, errs.ErrParseEnum))
}
