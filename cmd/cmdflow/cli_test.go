package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInputs(t *testing.T) {
	engine, err := newEngine(&rootOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	err = runInputs(context.Background(), engine, &out, []string{
		"math add 1 2 3",
		"m sum",
		"echo say hello  world",
		"paint green",
		"paint blue wall",
		"math div 9 2",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"math add 1 2 3 => 6",
		"m sum => 0",
		"echo say hello  world => hello  world",
		"paint green => painted everything green",
		"paint blue wall => painted wall blue",
		"math div 9 2 => 4.5",
	}, "\n")+"\n", out.String())
}

func TestRunInputs_Failures(t *testing.T) {
	engine, err := newEngine(&rootOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	err = runInputs(context.Background(), engine, &out, []string{"math div 1 0", "paint purple"})
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "math div 1 0 => precondition non-zero failed: divisor must not be zero", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `paint purple => could not parse "purple" for parameter color`), lines[1])
}

func TestRepl(t *testing.T) {
	engine, err := newEngine(&rootOptions{ignoreCase: true})
	require.NoError(t, err)

	in := strings.NewReader("MATH ADD 2 2\n\n  echo upper shout  \nexit\nmath add 1 1\n")
	var out bytes.Buffer
	require.NoError(t, repl(context.Background(), engine, in, &out))
	assert.Equal(t, "4\nSHOUT\n", out.String())
}

func TestListCommands(t *testing.T) {
	engine, err := newEngine(&rootOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	listCommands(engine, &out)
	assert.Contains(t, out.String(), `math add [values...] (or sum) "adds integers"`)
	assert.Contains(t, out.String(), "    <divisor> (required)")
	assert.Contains(t, out.String(), "paint <color> [target]")
}

func TestRootCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"run", "--quoted", `echo say "quoted  text"`})

	require.NoError(t, root.Execute())
	assert.Equal(t, `echo say "quoted  text" => quoted  text`+"\n", out.String())
}
