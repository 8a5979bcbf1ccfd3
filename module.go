package cmdflow

import (
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
)

// Module groups commands and submodules. A module's aliases prefix the aliases of everything
// it contains; a module without aliases only groups and contributes defaults.
//
// Policies left unset on a module fall back to the nearest ancestor that sets them and then
// to the engine Options. The fallback is resolved on every call.
type Module struct {
	name               string
	description        string
	remarks            string
	aliases            []string
	enabled            atomic.Bool
	runMode            *types.RunMode
	ignoreExtraArgs    *bool
	multiMatch         *types.MultiMatchPolicy
	argumentParserType reflect.Type
	preconditions      []Precondition
	commands           []*Command
	tree               *moduleTree
	index              int
	registrations      atomic.Int32
}

// NewModule creates a module configured by configs. Submodules and commands passed with
// WithSubmodules and WithCommands become owned by the new module.
func NewModule(configs ...ConfigureModuleFunc) (*Module, error) {
	m := &Module{}
	m.enabled.Store(true)
	newModuleTree(m)

	var err error
	for _, config := range configs {
		config(m, &err)
		if err != nil {
			return nil, err
		}
	}

	if m.name == "" {
		return nil, errs.ErrEmptyName.WithArgs("module")
	}
	if err := checkAliases("module "+m.name, m.aliases); err != nil {
		return nil, err
	}

	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Description returns the module description
func (m *Module) Description() string { return m.description }

// Remarks returns the module remarks
func (m *Module) Remarks() string { return m.remarks }

// Aliases returns the aliases prefixed to the aliases of the module's commands
func (m *Module) Aliases() []string { return m.aliases }

// Commands returns the commands declared directly on the module
func (m *Module) Commands() []*Command { return m.commands }

// Preconditions returns the preconditions declared directly on the module
func (m *Module) Preconditions() []Precondition { return m.preconditions }

// Parent returns the module containing m, or nil for a root module
func (m *Module) Parent() *Module { return m.tree.parent(m.index) }

// Submodules returns the modules declared directly inside m
func (m *Module) Submodules() []*Module { return m.tree.children(m.index) }

// Root returns the outermost module containing m
func (m *Module) Root() *Module { return m.tree.nodes[0].module }

// Path returns the names of the module and its ancestors, outermost first
func (m *Module) Path() string {
	var names []string
	for cur := m; cur != nil; cur = cur.Parent() {
		names = append(names, cur.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " ")
}

// AllCommands returns the commands of m and of every module below it, breadth first
func (m *Module) AllCommands() []*Command {
	var commands []*Command
	m.tree.walk(m.index, func(mod *Module) bool {
		commands = append(commands, mod.commands...)
		return true
	})
	return commands
}

// Enable enables the module and, unless they are disabled themselves, its commands
func (m *Module) Enable() { m.enabled.Store(true) }

// Disable disables the module and every command below it
func (m *Module) Disable() { m.enabled.Store(false) }

// IsEnabled reports whether the module and all of its ancestors are enabled
func (m *Module) IsEnabled() bool {
	for cur := m; cur != nil; cur = cur.Parent() {
		if !cur.enabled.Load() {
			return false
		}
	}
	return true
}

// EffectiveRunMode resolves the run mode from m, its ancestors and opts
func (m *Module) EffectiveRunMode(opts *Options) types.RunMode {
	for cur := m; cur != nil; cur = cur.Parent() {
		if cur.runMode != nil {
			return *cur.runMode
		}
	}
	return opts.RunMode
}

// EffectiveIgnoreExtraArgs resolves the ignore-extra-args flag from m, its ancestors and opts
func (m *Module) EffectiveIgnoreExtraArgs(opts *Options) bool {
	for cur := m; cur != nil; cur = cur.Parent() {
		if cur.ignoreExtraArgs != nil {
			return *cur.ignoreExtraArgs
		}
	}
	return opts.IgnoreExtraArgs
}

// EffectiveMultiMatch resolves the multi-match policy from m, its ancestors and opts
func (m *Module) EffectiveMultiMatch(opts *Options) types.MultiMatchPolicy {
	for cur := m; cur != nil; cur = cur.Parent() {
		if cur.multiMatch != nil {
			return *cur.multiMatch
		}
	}
	return opts.MultiMatch
}

// EffectiveArgumentParserType resolves the argument parser type from m and its ancestors.
// nil means the engine's default argument parser.
func (m *Module) EffectiveArgumentParserType() reflect.Type {
	for cur := m; cur != nil; cur = cur.Parent() {
		if cur.argumentParserType != nil {
			return cur.argumentParserType
		}
	}
	return nil
}

// effectivePreconditions returns the preconditions of m followed by those of its ancestors
func (m *Module) effectivePreconditions() []Precondition {
	var out []Precondition
	for cur := m; cur != nil; cur = cur.Parent() {
		out = append(out, cur.preconditions...)
	}
	return out
}

func checkAliases(owner string, aliases []string) error {
	seen := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		if strings.TrimSpace(a) == "" {
			return errs.ErrEmptyAlias.WithArgs(owner)
		}
		if _, dup := seen[a]; dup {
			return errs.ErrDuplicateAlias.WithArgs(owner, a)
		}
		seen[a] = struct{}{}
	}
	return nil
}
