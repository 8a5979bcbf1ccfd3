package cmdflow

import (
	"context"
	"io"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func mustEngine(t *testing.T, configs ...ConfigureEngineFunc) *Engine {
	t.Helper()
	e, err := NewEngineWith(append([]ConfigureEngineFunc{WithLogger(quietLogger())}, configs...)...)
	require.NoError(t, err)
	return e
}

func mustCommand(t *testing.T, configs ...ConfigureCommandFunc) *Command {
	t.Helper()
	cmd, err := NewCommand(configs...)
	require.NoError(t, err)
	return cmd
}

func mustModule(t *testing.T, configs ...ConfigureModuleFunc) *Module {
	t.Helper()
	m, err := NewModule(configs...)
	require.NoError(t, err)
	return m
}

func mustParameter(t *testing.T, name string, typ reflect.Type, configs ...ConfigureParameterFunc) *Parameter {
	t.Helper()
	p, err := NewParameter(name, typ, configs...)
	require.NoError(t, err)
	return p
}

func noop(ctx context.Context, c *CommandContext) error {
	return nil
}

func counting(n *atomic.Int32) VoidHandlerFunc {
	return func(ctx context.Context, c *CommandContext) error {
		n.Add(1)
		return nil
	}
}

// echoArgs returns the bound values in declaration order
func echoArgs(ctx context.Context, c *CommandContext) (any, error) {
	return c.Args.Values(), nil
}

var (
	intType    = reflect.TypeOf(0)
	stringType = reflect.TypeOf("")
)
