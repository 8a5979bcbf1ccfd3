package cmdflow

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/internal/parse"
	"github.com/napalu/cmdflow/internal/util"
	"github.com/napalu/cmdflow/types"
	"golang.org/x/text/cases"
)

// ModuleCache holds the registered module trees and searches them by input. Readers work
// on an immutable snapshot; AddModule and RemoveModule are serialized and publish a new
// snapshot, so a search sees a module either entirely or not at all.
type ModuleCache struct {
	mu             sync.Mutex
	snapshot       atomic.Pointer[cacheSnapshot]
	separator      string
	comparison     types.Comparison
	aliasConverter func(string) string
}

type cacheSnapshot struct {
	modules  []*Module
	commands []registeredCommand
	entries  []aliasEntry
}

// registeredCommand remembers the root a command was registered under, so removal does
// not depend on the current shape of the module tree
type registeredCommand struct {
	command *Command
	root    *Module
}

// NewModuleCache creates an empty cache matching with the separator, comparison and
// alias converter of opts
func NewModuleCache(opts Options) *ModuleCache {
	mc := &ModuleCache{
		separator:      opts.Separator,
		comparison:     opts.Comparison,
		aliasConverter: opts.AliasConverter,
	}
	mc.snapshot.Store(&cacheSnapshot{})
	return mc
}

// AddModule registers a root module together with its submodules and commands
func (mc *ModuleCache) AddModule(m *Module) error {
	if m == nil {
		return errs.ErrNilModule
	}
	if parent := m.Parent(); parent != nil {
		return errs.ErrSubmoduleRegistration.WithArgs(m.name, parent.name)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	old := mc.snapshot.Load()
	if slices.Contains(old.modules, m) {
		return errs.ErrModuleAlreadyRegistered.WithArgs(m.name)
	}

	for _, cmd := range m.AllCommands() {
		if cmd.executor == nil {
			return errs.ErrNilHandler.WithArgs(cmd.Path())
		}
	}

	next := &cacheSnapshot{
		modules:  append(slices.Clone(old.modules), m),
		commands: slices.Clone(old.commands),
		entries:  slices.Clone(old.entries),
	}
	for _, cmd := range m.AllCommands() {
		next.commands = append(next.commands, registeredCommand{command: cmd, root: m})
	}
	for _, e := range mc.buildEntries(m, [][]string{nil}) {
		e.root = m
		next.entries = append(next.entries, e)
	}
	m.registrations.Add(1)
	mc.snapshot.Store(next)

	return nil
}

// RemoveModule unregisters a root module together with its submodules and commands
func (mc *ModuleCache) RemoveModule(m *Module) error {
	if m == nil {
		return errs.ErrNilModule
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	old := mc.snapshot.Load()
	if !slices.Contains(old.modules, m) {
		return errs.ErrModuleNotRegistered.WithArgs(m.name)
	}

	next := &cacheSnapshot{}
	for _, mod := range old.modules {
		if mod != m {
			next.modules = append(next.modules, mod)
		}
	}
	for _, rc := range old.commands {
		if rc.root != m {
			next.commands = append(next.commands, rc)
		}
	}
	for _, e := range old.entries {
		if e.root != m {
			next.entries = append(next.entries, e)
		}
	}
	m.registrations.Add(-1)
	mc.snapshot.Store(next)

	return nil
}

// Modules returns the registered root modules in registration order
func (mc *ModuleCache) Modules() []*Module {
	return slices.Clone(mc.snapshot.Load().modules)
}

// Commands returns every registered command in registration order
func (mc *ModuleCache) Commands() []*Command {
	snap := mc.snapshot.Load()
	commands := make([]*Command, len(snap.commands))
	for i, rc := range snap.commands {
		commands[i] = rc.command
	}
	return commands
}

// Search returns the commands whose alias paths prefix input, ranked by alias length
// (in tokens, longest first), then priority (highest first), then registration order.
// A command matched by several alias paths is reported once, for its longest path.
func (mc *ModuleCache) Search(ctx context.Context, input string) ([]CommandMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Canceled(err)
	}

	type ranked struct {
		match  CommandMatch
		length int
		order  int
	}

	snap := mc.snapshot.Load()
	equal := newComparer(mc.comparison)
	seen := make(map[*Command]int)
	var found []ranked
	for i := range snap.entries {
		e := &snap.entries[i]
		remaining, ok := e.matchTokens(input, mc.separator, equal)
		if !ok {
			continue
		}

		r := ranked{
			match:  CommandMatch{Command: e.command, Alias: e.path, Remaining: remaining},
			length: len(e.tokens),
			order:  i,
		}
		if j, dup := seen[e.command]; dup {
			if r.length > found[j].length {
				r.order = found[j].order
				found[j] = r
			}
			continue
		}
		seen[e.command] = len(found)
		found = append(found, r)
	}

	sort.SliceStable(found, func(a, b int) bool {
		x, y := found[a], found[b]
		if x.length != y.length {
			return x.length > y.length
		}
		if px, py := x.match.Command.priority, y.match.Command.priority; px != py {
			return px > py
		}
		return x.order < y.order
	})

	matches := make([]CommandMatch, len(found))
	for i, r := range found {
		matches[i] = r.match
	}
	return matches, nil
}

// Suggest returns first alias tokens within maxDistance edits of the first token of input
func (mc *ModuleCache) Suggest(input string, maxDistance int) []string {
	if maxDistance <= 0 {
		return nil
	}

	tok := parse.Tokenizer{Separator: mc.separator}
	fields := tok.Fields(input)
	if len(fields) == 0 {
		return nil
	}

	normalize := func(s string) string { return s }
	if mc.comparison == types.IgnoreCase {
		fold := cases.Fold()
		normalize = fold.String
	}

	snap := mc.snapshot.Load()
	byNormalized := make(map[string]string)
	var candidates []string
	for _, e := range snap.entries {
		n := normalize(e.tokens[0])
		if _, ok := byNormalized[n]; !ok {
			byNormalized[n] = e.tokens[0]
			candidates = append(candidates, n)
		}
	}

	suggestions := util.Suggestions(normalize(fields[0]), candidates, maxDistance)
	for i, s := range suggestions {
		suggestions[i] = byNormalized[s]
	}
	return suggestions
}

// buildEntries expands the alias paths of m and its descendants. prefixes holds the token
// sequences contributed by the aliased ancestors of m.
func (mc *ModuleCache) buildEntries(m *Module, prefixes [][]string) []aliasEntry {
	tok := parse.Tokenizer{Separator: mc.separator}

	if len(m.aliases) > 0 {
		var expanded [][]string
		for _, p := range prefixes {
			for _, a := range m.aliases {
				expanded = append(expanded, concatTokens(p, mc.convert(tok.Fields(a))))
			}
		}
		prefixes = expanded
	}

	var entries []aliasEntry
	for _, cmd := range m.commands {
		for _, p := range prefixes {
			for _, a := range cmd.matchAliases() {
				tokens := concatTokens(p, mc.convert(tok.Fields(a)))
				entries = append(entries, aliasEntry{
					command: cmd,
					tokens:  tokens,
					path:    strings.Join(tokens, mc.separator),
				})
			}
		}
	}

	for _, sub := range m.Submodules() {
		entries = append(entries, mc.buildEntries(sub, prefixes)...)
	}

	return entries
}

func (mc *ModuleCache) convert(tokens []string) []string {
	if mc.aliasConverter == nil {
		return tokens
	}
	for i, t := range tokens {
		tokens[i] = mc.aliasConverter(t)
	}
	return tokens
}

func concatTokens(prefix, tokens []string) []string {
	out := make([]string, 0, len(prefix)+len(tokens))
	out = append(out, prefix...)
	return append(out, tokens...)
}
