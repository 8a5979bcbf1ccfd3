package cmdflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceFeature struct {
	stages []string
}

func TestFeatures(t *testing.T) {
	c := &CommandContext{}

	_, ok := GetFeature[*traceFeature](c)
	assert.False(t, ok)

	trace := &traceFeature{}
	SetFeature(c, trace)
	got, ok := GetFeature[*traceFeature](c)
	require.True(t, ok)
	assert.Same(t, trace, got)

	SetFeature(c, MatchesFeature{})
	_, ok = GetFeature[*MatchesFeature](c)
	assert.False(t, ok, "features are keyed by exact type")

	DeleteFeature[*traceFeature](c)
	_, ok = GetFeature[*traceFeature](c)
	assert.False(t, ok)
}

func TestFeatures_SharedAcrossStages(t *testing.T) {
	cmd := mustCommand(t, WithName("ping"), WithHandler(noop))
	e := mustEngine(t,
		WithModules(mustModule(t, WithModuleName("m"), WithCommands(cmd))),
		WithPipeline(func(b *PipelineBuilder) {
			b.Use(func(ctx context.Context, c *CommandContext, next CommandDelegate) error {
				SetFeature(c, &traceFeature{stages: []string{"first"}})
				return next(ctx, c)
			})
			b.UseDefaults()
			b.Use(func(ctx context.Context, c *CommandContext, next CommandDelegate) error {
				trace, _ := GetFeature[*traceFeature](c)
				trace.stages = append(trace.stages, "last")
				return next(ctx, c)
			})
		}))

	c, err := e.ExecuteContext(context.Background(), "ping")
	require.NoError(t, err)
	trace, ok := GetFeature[*traceFeature](c)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "last"}, trace.stages)
	assert.Equal(t, SuccessResult{}, c.Result)

	matches, ok := GetFeature[*MatchesFeature](c)
	require.True(t, ok)
	require.Len(t, matches.Matches, 1)
	assert.Same(t, cmd, matches.Matches[0].Command)
}

func TestArg(t *testing.T) {
	name := mustParameter(t, "name", stringType)
	count := mustParameter(t, "count", intType)

	c := &CommandContext{}
	_, ok := Arg[string](c, "name")
	assert.False(t, ok)

	c.Args = NewArguments()
	c.Args.Set(name, "ada")
	c.Args.Set(count, 3)

	s, ok := Arg[string](c, "name")
	assert.True(t, ok)
	assert.Equal(t, "ada", s)

	n, ok := Arg[int](c, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Arg[int](c, "name")
	assert.False(t, ok)
	_, ok = Arg[int](c, "missing")
	assert.False(t, ok)

	v, ok := c.Args.Lookup(count)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, c.Args.Len())
}

func TestCommandContext_Defaults(t *testing.T) {
	c := &CommandContext{}
	assert.Equal(t, DefaultOptions().Separator, c.Options().Separator)
	assert.NotNil(t, c.TypeParsers())

	e := mustEngine(t, WithSeparator(":"))
	c = newCommandContext(e, "a:b")
	assert.Equal(t, ":", c.Options().Separator)
	assert.Same(t, e.TypeParsers(), c.TypeParsers())
	assert.NotEqual(t, newCommandContext(e, "").RequestID, c.RequestID)
}
