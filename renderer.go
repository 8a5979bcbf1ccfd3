package cmdflow

import (
	"fmt"
	"strings"

	"github.com/napalu/cmdflow/i18n"
	"github.com/napalu/cmdflow/internal/parse"
)

const (
	usagePrefixKey     = "cmdflow.usage"
	usageOrKey         = usagePrefixKey + ".or"
	usageDefaultsToKey = usagePrefixKey + ".defaults_to"
	usageOptionalKey   = usagePrefixKey + ".optional"
	usageRequiredKey   = usagePrefixKey + ".required"
)

// Renderer formats usage lines for commands and their parameters
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer using the separator of opts
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Renderer returns a renderer for the engine's commands
func (e *Engine) Renderer() *Renderer {
	return NewRenderer(e.options)
}

// ParameterName returns the placeholder of p: <name> for required parameters, [name] for
// parameters that may be left out, with a trailing ... when p consumes the rest of the input
func (r *Renderer) ParameterName(p *Parameter) string {
	name := p.name
	if p.variadic || p.remainder {
		name += "..."
	}
	if p.coverable(&r.opts) {
		return "[" + name + "]"
	}
	return "<" + name + ">"
}

// ParameterUsage describes p on one line
func (r *Renderer) ParameterUsage(p *Parameter) string {
	usage := r.ParameterName(p)
	if p.description != "" {
		usage += " \"" + p.description + "\""
	}

	if p.optional && p.defaultValue != nil {
		usage += fmt.Sprintf(" (%s: %v)", i18n.T(usageDefaultsToKey), p.defaultValue)
	}

	requiredOrOptional := i18n.T(usageRequiredKey)
	if p.coverable(&r.opts) {
		requiredOrOptional = i18n.T(usageOptionalKey)
	}

	return usage + " (" + requiredOrOptional + ")"
}

// CommandSynopsis returns the first match alias of every level followed by the parameter
// placeholders, e.g. "math add [values...]"
func (r *Renderer) CommandSynopsis(c *Command) string {
	var parts []string
	var modules []*Module
	for m := c.module; m != nil; m = m.Parent() {
		modules = append(modules, m)
	}
	for i := len(modules) - 1; i >= 0; i-- {
		if aliases := modules[i].aliases; len(aliases) > 0 {
			parts = append(parts, r.alias(aliases[0]))
		}
	}
	parts = append(parts, r.alias(c.matchAliases()[0]))
	for _, p := range c.parameters {
		parts = append(parts, r.ParameterName(p))
	}
	return strings.Join(parts, r.opts.Separator)
}

// CommandUsage describes c on one line: its synopsis, the other aliases it answers to
// and its description
func (r *Renderer) CommandUsage(c *Command) string {
	usage := r.CommandSynopsis(c)
	if aliases := c.matchAliases(); len(aliases) > 1 {
		others := make([]string, len(aliases)-1)
		for i, a := range aliases[1:] {
			others[i] = r.alias(a)
		}
		usage += " (" + i18n.T(usageOrKey) + " " + strings.Join(others, ", ") + ")"
	}
	if c.description != "" {
		usage += " \"" + c.description + "\""
	}
	return usage
}

// alias returns a as the cache indexes it
func (r *Renderer) alias(a string) string {
	tok := parse.Tokenizer{Separator: r.opts.Separator}
	tokens := tok.Fields(a)
	if r.opts.AliasConverter != nil {
		for i, t := range tokens {
			tokens[i] = r.opts.AliasConverter(t)
		}
	}
	return tok.Join(tokens)
}
