package cmdflow

import (
	"reflect"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
)

// WithName sets the command name. A command without aliases is matched by its name.
func WithName(name string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.name = name
	}
}

// WithAliases sets the aliases the command is matched by. An alias may span several tokens.
func WithAliases(aliases ...string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.aliases = append(c.aliases, aliases...)
	}
}

// WithCommandDescription sets the command description
func WithCommandDescription(description string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.description = description
	}
}

// WithCommandRemarks sets the command remarks
func WithCommandRemarks(remarks string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.remarks = remarks
	}
}

// WithPriority sets the tie-break priority; higher priorities rank first
func WithPriority(priority int) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.priority = priority
	}
}

// WithEnabled sets whether the command starts enabled
func WithEnabled(enabled bool) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.enabled.Store(enabled)
	}
}

// WithHandler sets the command handler. fn must have one of the shapes accepted by NewHandler.
func WithHandler(fn any) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.handler, *err = NewHandler(fn)
	}
}

// WithParameters appends parameters in declaration order
func WithParameters(parameters ...*Parameter) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		for _, p := range parameters {
			if p == nil {
				*err = errs.ErrNilParameterType.WithArgs("<nil>")
				return
			}
			c.parameters = append(c.parameters, p)
		}
	}
}

// WithParameter creates a parameter and appends it
func WithParameter(name string, typ reflect.Type, configs ...ConfigureParameterFunc) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		var p *Parameter
		if p, *err = NewParameter(name, typ, configs...); *err == nil {
			c.parameters = append(c.parameters, p)
		}
	}
}

// WithPreconditions adds preconditions checked before the command's arguments are bound
func WithPreconditions(preconditions ...Precondition) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.preconditions = append(c.preconditions, preconditions...)
	}
}

// WithRunMode overrides the run mode of the command
func WithRunMode(mode types.RunMode) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.runMode = &mode
	}
}

// WithIgnoreExtraArgs overrides whether the command accepts more tokens than parameters
func WithIgnoreExtraArgs(ignore bool) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.ignoreExtraArgs = &ignore
	}
}

// WithArgumentParser binds the command with the ArgumentParser resolved for typ through
// the service resolver
func WithArgumentParser(typ reflect.Type) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.argumentParserType = typ
	}
}
