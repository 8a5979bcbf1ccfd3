package parse

import (
	"testing"

	"github.com/napalu/cmdflow/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_Split(t *testing.T) {
	tests := []struct {
		name      string
		tokenizer Tokenizer
		input     string
		want      []string
		wantErr   bool
	}{
		{"blank", Tokenizer{Separator: " "}, "   ", nil, false},
		{"empty", Tokenizer{Separator: " "}, "", nil, false},
		{"simple", Tokenizer{Separator: " "}, "1 2 3", []string{"1", "2", "3"}, false},
		{"keeps empty tokens", Tokenizer{Separator: " "}, "a  b", []string{"a", "", "b"}, false},
		{"custom separator", Tokenizer{Separator: ","}, "a,b c", []string{"a", "b c"}, false},
		{"quoted", Tokenizer{Separator: " ", Quoted: true}, `say "hello world" now`, []string{"say", "hello world", "now"}, false},
		{"unterminated quote", Tokenizer{Separator: " ", Quoted: true}, `say "hello`, nil, true},
		{"quoted custom separator", Tokenizer{Separator: ",", Quoted: true}, `a,b c,d`, []string{"a", "b c", "d"}, false},
		{"quoted custom separator groups", Tokenizer{Separator: ",", Quoted: true}, `say,"x,y",'z'`, []string{"say", "x,y", "z"}, false},
		{"quoted multi-byte separator", Tokenizer{Separator: "::", Quoted: true}, `a::"b::c"::d`, []string{"a", "b::c", "d"}, false},
		{"quoted custom separator escape", Tokenizer{Separator: ",", Quoted: true}, `a\,b,c`, []string{"a,b", "c"}, false},
		{"quoted custom separator keeps empty tokens", Tokenizer{Separator: ",", Quoted: true}, `a,,b`, []string{"a", "", "b"}, false},
		{"quoted custom separator unterminated", Tokenizer{Separator: ",", Quoted: true}, `a,"b`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tokenizer.Split(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrParseTokenize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizer_JoinRoundTrip(t *testing.T) {
	tok := Tokenizer{Separator: " "}
	in := "hello  world again"
	tokens, err := tok.Split(in)
	require.NoError(t, err)
	assert.Equal(t, in, tok.Join(tokens))
}

func TestTokenizer_Fields(t *testing.T) {
	tok := Tokenizer{Separator: " "}
	assert.Equal(t, []string{"git", "remote", "add"}, tok.Fields(" git  remote add "))
	assert.Empty(t, tok.Fields(""))
}
