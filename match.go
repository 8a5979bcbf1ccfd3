package cmdflow

import (
	"strings"

	"github.com/napalu/cmdflow/types"
	"golang.org/x/text/cases"
)

// CommandMatch pairs a candidate command with the alias that matched it and the input left
// after the alias
type CommandMatch struct {
	Command   *Command
	Alias     string
	Remaining string
}

// newComparer returns an equality function for cmp. The returned function owns its caser
// and must not be shared between goroutines.
func newComparer(cmp types.Comparison) func(a, b string) bool {
	if cmp != types.IgnoreCase {
		return func(a, b string) bool { return a == b }
	}

	fold := cases.Fold()
	return func(a, b string) bool {
		if a == b {
			return true
		}
		return fold.String(a) == fold.String(b)
	}
}

// aliasEntry is one full alias path of a command: the concatenation of one alias of each
// aliased ancestor module with one alias of the command
type aliasEntry struct {
	command *Command
	root    *Module
	tokens  []string
	path    string
}

// matchTokens reports whether input starts with the entry's tokens and returns what is
// left. Separators around alias tokens are not part of the remaining input.
func (e *aliasEntry) matchTokens(input, sep string, equal func(a, b string) bool) (string, bool) {
	rest := input
	for _, tok := range e.tokens {
		rest = trimSeparators(rest, sep)
		head, tail, found := strings.Cut(rest, sep)
		if !equal(head, tok) {
			return "", false
		}
		if found {
			rest = tail
		} else {
			rest = ""
		}
	}
	return trimSeparators(rest, sep), true
}

func trimSeparators(s, sep string) string {
	for strings.HasPrefix(s, sep) {
		s = s[len(sep):]
	}
	return s
}
