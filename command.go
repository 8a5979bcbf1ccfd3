package cmdflow

import (
	"reflect"
	"sync/atomic"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
)

// Command is a single invokable unit owned by a module. The executor for its handler is
// selected when the command is created, so an unsupported handler is reported by NewCommand
// and never while serving a request.
type Command struct {
	name               string
	aliases            []string
	description        string
	remarks            string
	priority           int
	enabled            atomic.Bool
	parameters         []*Parameter
	preconditions      []Precondition
	handler            Handler
	executor           Executor
	runMode            *types.RunMode
	ignoreExtraArgs    *bool
	argumentParserType reflect.Type
	module             *Module
}

// NewCommand creates a command configured by configs. A name and a handler are required.
func NewCommand(configs ...ConfigureCommandFunc) (*Command, error) {
	cmd := &Command{}
	cmd.enabled.Store(true)

	var err error
	for _, config := range configs {
		config(cmd, &err)
		if err != nil {
			return nil, err
		}
	}

	if cmd.name == "" {
		return nil, errs.ErrEmptyName.WithArgs("command")
	}
	if err := checkAliases("command "+cmd.name, cmd.aliases); err != nil {
		return nil, err
	}
	if err := cmd.checkParameters(); err != nil {
		return nil, err
	}
	if cmd.handler.fn == nil {
		return nil, errs.ErrNilHandler.WithArgs(cmd.name)
	}
	if cmd.executor, err = SelectExecutor(cmd.handler); err != nil {
		return nil, err
	}

	return cmd, nil
}

func (c *Command) checkParameters() error {
	seen := make(map[string]struct{}, len(c.parameters))
	last := len(c.parameters) - 1
	for i, p := range c.parameters {
		if _, dup := seen[p.name]; dup {
			return errs.ErrInvalidParameterLayout.WithArgs(c.name, "duplicate parameter "+p.name)
		}
		seen[p.name] = struct{}{}

		if p.remainder && p.variadic {
			return errs.ErrInvalidParameterLayout.WithArgs(c.name, "parameter "+p.name+" cannot be both remainder and variadic")
		}
		if (p.remainder || p.variadic) && i != last {
			return errs.ErrInvalidParameterLayout.WithArgs(c.name, "only the last parameter may be a remainder or variadic, not "+p.name)
		}
		if p.command != nil && p.command != c {
			return errs.ErrInvalidParameterLayout.WithArgs(c.name, "parameter "+p.name+" belongs to command "+p.command.name)
		}
		p.command = c
	}
	return nil
}

// Name returns the command name
func (c *Command) Name() string { return c.name }

// Aliases returns the declared aliases
func (c *Command) Aliases() []string { return c.aliases }

// Description returns the command description
func (c *Command) Description() string { return c.description }

// Remarks returns the command remarks
func (c *Command) Remarks() string { return c.remarks }

// Priority breaks ties between candidates matched by aliases of equal length; higher wins
func (c *Command) Priority() int { return c.priority }

// Parameters returns the parameters in declaration order
func (c *Command) Parameters() []*Parameter { return c.parameters }

// Preconditions returns the preconditions declared directly on the command
func (c *Command) Preconditions() []Precondition { return c.preconditions }

// Handler returns the command handler
func (c *Command) Handler() Handler { return c.handler }

// Executor returns the executor selected for the handler
func (c *Command) Executor() Executor { return c.executor }

// Module returns the owning module, or nil before the command is added to one
func (c *Command) Module() *Module { return c.module }

// Path returns the owning module path followed by the command name
func (c *Command) Path() string {
	if c.module == nil {
		return c.name
	}
	return c.module.Path() + " " + c.name
}

// Enable enables the command
func (c *Command) Enable() { c.enabled.Store(true) }

// Disable disables the command
func (c *Command) Disable() { c.enabled.Store(false) }

// IsEnabled reports whether the command and its owning module chain are enabled
func (c *Command) IsEnabled() bool {
	if !c.enabled.Load() {
		return false
	}
	return c.module == nil || c.module.IsEnabled()
}

// EffectiveRunMode resolves the run mode from the command, its module chain and opts
func (c *Command) EffectiveRunMode(opts *Options) types.RunMode {
	if c.runMode != nil {
		return *c.runMode
	}
	if c.module != nil {
		return c.module.EffectiveRunMode(opts)
	}
	return opts.RunMode
}

// EffectiveIgnoreExtraArgs resolves the ignore-extra-args flag from the command, its module chain and opts
func (c *Command) EffectiveIgnoreExtraArgs(opts *Options) bool {
	if c.ignoreExtraArgs != nil {
		return *c.ignoreExtraArgs
	}
	if c.module != nil {
		return c.module.EffectiveIgnoreExtraArgs(opts)
	}
	return opts.IgnoreExtraArgs
}

// EffectiveMultiMatch resolves the multi-match policy of the owning module chain
func (c *Command) EffectiveMultiMatch(opts *Options) types.MultiMatchPolicy {
	if c.module != nil {
		return c.module.EffectiveMultiMatch(opts)
	}
	return opts.MultiMatch
}

// EffectiveArgumentParserType resolves the argument parser type from the command and its
// module chain. nil means the engine's default argument parser.
func (c *Command) EffectiveArgumentParserType() reflect.Type {
	if c.argumentParserType != nil {
		return c.argumentParserType
	}
	if c.module != nil {
		return c.module.EffectiveArgumentParserType()
	}
	return nil
}

// EffectivePreconditions returns the command's preconditions followed by those of its
// module chain, innermost module first
func (c *Command) EffectivePreconditions() []Precondition {
	out := append([]Precondition(nil), c.preconditions...)
	if c.module != nil {
		out = append(out, c.module.effectivePreconditions()...)
	}
	return out
}

// matchAliases returns the aliases used for matching; a command without aliases is matched by its name
func (c *Command) matchAliases() []string {
	if len(c.aliases) > 0 {
		return c.aliases
	}
	return []string{c.name}
}

// absorbsExtraTokens reports whether the last parameter is a remainder or variadic
func (c *Command) absorbsExtraTokens() bool {
	if len(c.parameters) == 0 {
		return false
	}
	p := c.parameters[len(c.parameters)-1]
	return p.remainder || p.variadic
}

func (c *Command) String() string {
	return c.Path()
}
