// Package parse splits command input into tokens.
package parse

import (
	"strings"

	"github.com/google/shlex"
	"github.com/napalu/cmdflow/errs"
)

// Tokenizer splits input on Separator. Empty tokens between consecutive separators are
// kept so that a remainder can be rejoined verbatim. When Quoted is set, single and double
// quotes group text into one token, which lets a token contain the separator. A whitespace
// separator then follows shell rules and any run of whitespace splits.
type Tokenizer struct {
	Separator string
	Quoted    bool
}

// Split returns the tokens of s. Blank input yields no tokens.
func (t Tokenizer) Split(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	if t.Quoted {
		if strings.TrimSpace(t.Separator) != "" {
			return splitQuoted(s, t.Separator)
		}
		tokens, err := shlex.Split(s)
		if err != nil {
			return nil, errs.ErrParseTokenize.Wrap(err)
		}
		return tokens, nil
	}

	return strings.Split(s, t.Separator), nil
}

// Count returns the number of tokens in s
func (t Tokenizer) Count(s string) (int, error) {
	tokens, err := t.Split(s)
	return len(tokens), err
}

// Join rejoins tokens with the separator
func (t Tokenizer) Join(tokens []string) string {
	return strings.Join(tokens, t.Separator)
}

// Fields splits s on the separator dropping empty tokens. It is used for aliases and
// command paths where repeated separators carry no meaning.
func (t Tokenizer) Fields(s string) []string {
	parts := strings.Split(s, t.Separator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitQuoted splits s on sep outside of quotes. Quotes are removed from the token and a
// backslash escapes the next character except inside single quotes.
func splitQuoted(s, sep string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		quote  byte
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote == '\'':
			if ch == '\'' {
				quote = 0
				continue
			}
		case ch == '\\' && i+1 < len(s):
			i++
			ch = s[i]
		case quote == '"':
			if ch == '"' {
				quote = 0
				continue
			}
		case ch == '"' || ch == '\'':
			quote = ch
			continue
		case strings.HasPrefix(s[i:], sep):
			tokens = append(tokens, cur.String())
			cur.Reset()
			i += len(sep) - 1
			continue
		}
		cur.WriteByte(ch)
	}
	if quote != 0 {
		return nil, errs.ErrParseTokenize
	}
	return append(tokens, cur.String()), nil
}
