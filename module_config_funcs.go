package cmdflow

import (
	"reflect"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
)

// WithModuleName sets the module name
func WithModuleName(name string) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.name = name
	}
}

// WithModuleAliases sets the aliases prefixed to the aliases of the module's contents.
// An alias may span several tokens, e.g. "remote origin".
func WithModuleAliases(aliases ...string) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.aliases = append(m.aliases, aliases...)
	}
}

// WithModuleDescription sets the module description
func WithModuleDescription(description string) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.description = description
	}
}

// WithModuleRemarks sets the module remarks
func WithModuleRemarks(remarks string) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.remarks = remarks
	}
}

// WithModuleEnabled sets whether the module starts enabled
func WithModuleEnabled(enabled bool) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.enabled.Store(enabled)
	}
}

// WithModuleRunMode overrides the run mode for the module's commands
func WithModuleRunMode(mode types.RunMode) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.runMode = &mode
	}
}

// WithModuleIgnoreExtraArgs overrides the ignore-extra-args flag for the module's commands
func WithModuleIgnoreExtraArgs(ignore bool) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.ignoreExtraArgs = &ignore
	}
}

// WithModuleMultiMatch overrides the multi-match policy for the module's commands
func WithModuleMultiMatch(policy types.MultiMatchPolicy) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.multiMatch = &policy
	}
}

// WithModuleArgumentParser binds the module's commands with the ArgumentParser resolved
// for typ through the service resolver
func WithModuleArgumentParser(typ reflect.Type) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.argumentParserType = typ
	}
}

// WithModulePreconditions adds preconditions checked for every command of the module
func WithModulePreconditions(preconditions ...Precondition) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		m.preconditions = append(m.preconditions, preconditions...)
	}
}

// WithSubmodules nests modules inside the module being configured
func WithSubmodules(modules ...*Module) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		for _, sub := range modules {
			if sub == nil {
				*err = errs.ErrNilModule
				return
			}
			if *err = m.tree.attach(m.index, sub); *err != nil {
				return
			}
		}
	}
}

// WithCommands adds commands to the module being configured
func WithCommands(commands ...*Command) ConfigureModuleFunc {
	return func(m *Module, err *error) {
		for _, cmd := range commands {
			if cmd.module != nil {
				*err = errs.ErrCommandAlreadyOwned.WithArgs(cmd.name, cmd.module.name)
				return
			}
			cmd.module = m
			m.commands = append(m.commands, cmd)
		}
	}
}
