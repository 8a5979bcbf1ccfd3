package cmdflow

import (
	"errors"
	"reflect"
	"testing"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModule_Errors(t *testing.T) {
	owned := mustCommand(t, WithName("owned"), WithHandler(noop))
	mustModule(t, WithModuleName("owner"), WithCommands(owned))
	nested := mustModule(t, WithModuleName("nested"))
	mustModule(t, WithModuleName("holder"), WithSubmodules(nested))

	tests := []struct {
		name    string
		configs []ConfigureModuleFunc
		want    error
	}{
		{name: "no name", want: errs.ErrEmptyName},
		{name: "empty alias", configs: []ConfigureModuleFunc{WithModuleName("m"), WithModuleAliases("a", " ")}, want: errs.ErrEmptyAlias},
		{name: "duplicate alias", configs: []ConfigureModuleFunc{WithModuleName("m"), WithModuleAliases("a", "a")}, want: errs.ErrDuplicateAlias},
		{name: "nil submodule", configs: []ConfigureModuleFunc{WithModuleName("m"), WithSubmodules(nil)}, want: errs.ErrNilModule},
		{name: "submodule already nested", configs: []ConfigureModuleFunc{WithModuleName("m"), WithSubmodules(nested)}, want: errs.ErrSubmoduleRegistration},
		{name: "command already owned", configs: []ConfigureModuleFunc{WithModuleName("m"), WithCommands(owned)}, want: errs.ErrCommandAlreadyOwned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModule(tt.configs...)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestModule_Tree(t *testing.T) {
	leafCmd := mustCommand(t, WithName("leaf-cmd"), WithHandler(noop))
	midCmd := mustCommand(t, WithName("mid-cmd"), WithHandler(noop))
	rootCmd := mustCommand(t, WithName("root-cmd"), WithHandler(noop))

	leaf := mustModule(t, WithModuleName("leaf"), WithCommands(leafCmd))
	sibling := mustModule(t, WithModuleName("sibling"))
	mid := mustModule(t, WithModuleName("mid"), WithSubmodules(leaf), WithCommands(midCmd))
	root := mustModule(t, WithModuleName("root"), WithSubmodules(mid, sibling), WithCommands(rootCmd))

	assert.Nil(t, root.Parent())
	assert.Same(t, root, mid.Parent())
	assert.Same(t, mid, leaf.Parent())
	assert.Same(t, root, leaf.Root())
	assert.Equal(t, []*Module{mid, sibling}, root.Submodules())
	assert.Equal(t, []*Module{leaf}, mid.Submodules())

	assert.Equal(t, "root mid leaf", leaf.Path())
	assert.Equal(t, "root mid leaf leaf-cmd", leafCmd.Path())
	assert.Equal(t, "root mid leaf leaf-cmd", leafCmd.String())

	assert.Equal(t, []*Command{rootCmd, midCmd, leafCmd}, root.AllCommands())
	assert.Equal(t, []*Command{midCmd, leafCmd}, mid.AllCommands())
	assert.Same(t, leaf, leafCmd.Module())
}

func TestModule_EffectivePolicies(t *testing.T) {
	cmd := mustCommand(t, WithName("cmd"), WithHandler(noop))
	inner := mustModule(t, WithModuleName("inner"), WithCommands(cmd))
	outer := mustModule(t,
		WithModuleName("outer"),
		WithModuleRunMode(types.RunModeAwaited),
		WithModuleIgnoreExtraArgs(true),
		WithModuleMultiMatch(types.MultiMatchBest),
		WithModuleArgumentParser(TypeOf[fixedArgumentParser]()),
		WithSubmodules(inner))
	require.Same(t, outer, inner.Parent())

	opts := DefaultOptions()
	assert.Equal(t, types.RunModeAwaited, cmd.EffectiveRunMode(&opts))
	assert.True(t, cmd.EffectiveIgnoreExtraArgs(&opts))
	assert.Equal(t, types.MultiMatchBest, cmd.EffectiveMultiMatch(&opts))
	assert.Equal(t, TypeOf[fixedArgumentParser](), cmd.EffectiveArgumentParserType())

	mode := types.RunModeConcurrent
	inner.runMode = &mode
	assert.Equal(t, types.RunModeConcurrent, cmd.EffectiveRunMode(&opts))

	cmd.runMode = new(types.RunMode)
	assert.Equal(t, types.RunModeSequential, cmd.EffectiveRunMode(&opts))
}

func TestModule_PoliciesFallBackToOptions(t *testing.T) {
	cmd := mustCommand(t, WithName("cmd"), WithHandler(noop))
	mustModule(t, WithModuleName("m"), WithCommands(cmd))

	opts := Options{RunMode: types.RunModeConcurrent, IgnoreExtraArgs: true, MultiMatch: types.MultiMatchBest}
	assert.Equal(t, types.RunModeConcurrent, cmd.EffectiveRunMode(&opts))
	assert.True(t, cmd.EffectiveIgnoreExtraArgs(&opts))
	assert.Equal(t, types.MultiMatchBest, cmd.EffectiveMultiMatch(&opts))
	assert.Nil(t, cmd.EffectiveArgumentParserType())

	unowned := mustCommand(t, WithName("loose"), WithIgnoreExtraArgs(false), WithHandler(noop))
	assert.False(t, unowned.EffectiveIgnoreExtraArgs(&opts))
	assert.Equal(t, "loose", unowned.Path())
}

func TestModule_Enablement(t *testing.T) {
	cmd := mustCommand(t, WithName("cmd"), WithHandler(noop))
	inner := mustModule(t, WithModuleName("inner"), WithCommands(cmd))
	outer := mustModule(t, WithModuleName("outer"), WithSubmodules(inner))

	assert.True(t, cmd.IsEnabled())

	outer.Disable()
	assert.False(t, inner.IsEnabled())
	assert.False(t, cmd.IsEnabled())

	outer.Enable()
	inner.Disable()
	assert.True(t, outer.IsEnabled())
	assert.False(t, cmd.IsEnabled())

	inner.Enable()
	cmd.Disable()
	assert.True(t, inner.IsEnabled())
	assert.False(t, cmd.IsEnabled())

	disabled := mustModule(t, WithModuleName("off"), WithModuleEnabled(false))
	assert.False(t, disabled.IsEnabled())
}

func TestNewCommand_Errors(t *testing.T) {
	remainder := func(name string) *Parameter {
		return mustParameter(t, name, stringType, AsRemainder())
	}
	variadic := func(name string) *Parameter {
		return mustParameter(t, name, reflect.TypeOf([]int{}), AsVariadic())
	}
	shared := mustParameter(t, "shared", intType)
	mustCommand(t, WithName("first"), WithParameters(shared), WithHandler(noop))

	tests := []struct {
		name    string
		configs []ConfigureCommandFunc
		want    error
	}{
		{name: "no name", configs: []ConfigureCommandFunc{WithHandler(noop)}, want: errs.ErrEmptyName},
		{name: "no handler", configs: []ConfigureCommandFunc{WithName("c")}, want: errs.ErrNilHandler},
		{name: "nil handler", configs: []ConfigureCommandFunc{WithName("c"), WithHandler(VoidHandlerFunc(nil))}, want: errs.ErrNilHandler},
		{name: "unsupported handler", configs: []ConfigureCommandFunc{WithName("c"), WithHandler(func() {})}, want: errs.ErrUnsupportedHandlerShape},
		{name: "duplicate alias", configs: []ConfigureCommandFunc{WithName("c"), WithAliases("x", "x"), WithHandler(noop)}, want: errs.ErrDuplicateAlias},
		{name: "duplicate parameter", configs: []ConfigureCommandFunc{WithName("c"), WithParameter("p", intType), WithParameter("p", intType), WithHandler(noop)}, want: errs.ErrInvalidParameterLayout},
		{name: "remainder not last", configs: []ConfigureCommandFunc{WithName("c"), WithParameters(remainder("r"), mustParameter(t, "p", intType)), WithHandler(noop)}, want: errs.ErrInvalidParameterLayout},
		{name: "variadic not last", configs: []ConfigureCommandFunc{WithName("c"), WithParameters(variadic("v"), mustParameter(t, "p", intType)), WithHandler(noop)}, want: errs.ErrInvalidParameterLayout},
		{name: "remainder and variadic", configs: []ConfigureCommandFunc{WithName("c"), WithParameter("rv", reflect.TypeOf([]string{}), AsVariadic(), AsRemainder()), WithHandler(noop)}, want: errs.ErrInvalidParameterLayout},
		{name: "parameter of another command", configs: []ConfigureCommandFunc{WithName("c"), WithParameters(shared), WithHandler(noop)}, want: errs.ErrInvalidParameterLayout},
		{name: "variadic requires slice", configs: []ConfigureCommandFunc{WithName("c"), WithParameter("v", intType, AsVariadic()), WithHandler(noop)}, want: errs.ErrInvalidParameterLayout},
		{name: "invalid default", configs: []ConfigureCommandFunc{WithName("c"), WithParameter("p", intType, WithDefault("x")), WithHandler(noop)}, want: errs.ErrInvalidDefault},
		{name: "nil default for value type", configs: []ConfigureCommandFunc{WithName("c"), WithParameter("p", intType, WithDefault(nil)), WithHandler(noop)}, want: errs.ErrInvalidDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewCommand(tt.configs...)
			require.Error(t, err)
			assert.Nil(t, cmd)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestNewCommand_Accessors(t *testing.T) {
	cmd := mustCommand(t,
		WithName("deploy"),
		WithAliases("deploy", "ship"),
		WithCommandDescription("deploys a service"),
		WithCommandRemarks("requires credentials"),
		WithPriority(3),
		WithEnabled(false),
		WithParameter("service", stringType, WithParameterDescription("service name"), WithParameterRemarks("as registered")),
		WithParameter("replicas", reflect.TypeOf([]int{}), AsVariadic()),
		WithHandler(noop))

	assert.Equal(t, "deploy", cmd.Name())
	assert.Equal(t, []string{"deploy", "ship"}, cmd.Aliases())
	assert.Equal(t, "deploys a service", cmd.Description())
	assert.Equal(t, "requires credentials", cmd.Remarks())
	assert.Equal(t, 3, cmd.Priority())
	assert.False(t, cmd.IsEnabled())
	assert.Equal(t, ShapeVoid, cmd.Handler().Shape())
	assert.NotNil(t, cmd.Executor())
	assert.Nil(t, cmd.Module())
	assert.True(t, cmd.absorbsExtraTokens())

	params := cmd.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "service name", params[0].Description())
	assert.Equal(t, "as registered", params[0].Remarks())
	assert.Same(t, cmd, params[0].Command())
	assert.True(t, params[1].IsVariadic())
	assert.Equal(t, intType, params[1].ValueType())
	assert.Equal(t, reflect.TypeOf([]int{}), params[1].Type())
}

func TestNewParameter(t *testing.T) {
	_, err := NewParameter("", intType)
	assert.True(t, errors.Is(err, errs.ErrEmptyName))

	_, err = NewParameter("p", nil)
	assert.True(t, errors.Is(err, errs.ErrNilParameterType))

	p, err := NewParameterOf[*string]("p", WithDefault(nil))
	require.NoError(t, err)
	assert.True(t, p.IsOptional())
	assert.True(t, p.IsNullable())
	assert.Nil(t, p.DefaultValue())

	p, err = NewParameterOf[int]("n", AsOptional())
	require.NoError(t, err)
	assert.Equal(t, 0, p.DefaultValue())

	opts := DefaultOptions()
	s := mustParameter(t, "s", reflect.TypeOf(settings{}))
	assert.False(t, s.coverable(&opts))
	opts.ClassTypesNullable = true
	assert.True(t, s.coverable(&opts))
}
