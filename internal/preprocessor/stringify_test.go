package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/diagnostic"
	"github.com/kestrel-lang/kestrel/internal/token"
)

func TestStringifyArgument(t *testing.T) {
	tests := []struct {
		name string
		toks []token.Token
		want string
	}{
		{
			name: "Spaced expression",
			toks: []token.Token{ident("a"), tkSp(token.Plus, "+"), tkSp(token.Identifier, "b")},
			want: `"a + b"`,
		},
		{
			name: "No source whitespace",
			toks: []token.Token{ident("a"), tk(token.Plus, "+"), tk(token.Identifier, "b")},
			want: `"a+b"`,
		},
		{
			name: "Embedded string literal",
			toks: []token.Token{tk(token.String, `"x"`)},
			want: `"\"x\""`,
		},
		{
			name: "Backslash inside literal",
			toks: []token.Token{tk(token.String, `"a\n"`)},
			want: `"\"a\\n\""`,
		},
		{
			name: "Character literal",
			toks: []token.Token{tk(token.Char, `'\0'`)},
			want: `"'\\0'"`,
		},
		{
			name: "Adjacent identifiers get a space",
			toks: []token.Token{ident("a"), tk(token.Identifier, "b")},
			want: `"a b"`,
		},
		{
			name: "Identifier against number gets a space",
			toks: []token.Token{ident("x"), tk(token.Integer, "1")},
			want: `"x 1"`,
		},
		{
			name: "Punctuation pastes safely",
			toks: []token.Token{tk(token.LParen, "("), tk(token.Identifier, "a"), tk(token.RParen, ")")},
			want: `"(a)"`,
		},
		{
			name: "Leading whitespace of first token is dropped",
			toks: []token.Token{tkSp(token.Identifier, "a")},
			want: `"a"`,
		},
		{
			name: "Empty argument",
			toks: nil,
			want: `""`,
		},
		{
			name: "Stops at EOF marker",
			toks: argBuf([]token.Token{ident("a")}, []token.Token{ident("b")}),
			want: `"a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.NewEngine(diagnostic.DefaultConfig())
			got := StringifyArgument(tt.toks, diags, false, loc(0), loc(10))

			assert.Equal(t, tt.want, got.Spelling)
			assert.Equal(t, token.String, got.Kind)
			assert.Empty(t, diags.Diagnostics())
		})
	}
}

func TestStringifyCarriesExpansionRange(t *testing.T) {
	got := StringifyArgument([]token.Token{ident("a")}, nil, false, loc(3), loc(9))

	assert.Equal(t, loc(3), got.Span.Start)
	assert.Equal(t, loc(9), got.Span.End)
}

func TestStringifyTrailingBackslashIsRepaired(t *testing.T) {
	diags := diagnostic.NewEngine(diagnostic.DefaultConfig())

	got := StringifyArgument([]token.Token{ident("a"), tkSp(token.Invalid, `\`)}, diags, false, loc(0), loc(4))

	assert.Equal(t, `"a "`, got.Spelling)
	require.Len(t, diags.Warnings(), 1)
	assert.Equal(t, CodeInvalidStringLiteral, diags.Warnings()[0].Code)
}

func TestStringifyEscapedBackslashSurvives(t *testing.T) {
	diags := diagnostic.NewEngine(diagnostic.DefaultConfig())

	// The literal spelling ends in a backslash, which escaping doubles;
	// an even run needs no repair.
	got := StringifyArgument([]token.Token{tk(token.String, `"a\`)}, diags, false, loc(0), loc(4))

	assert.Equal(t, `"\"a\\"`, got.Spelling)
	assert.Empty(t, diags.Diagnostics())
}

func TestCharifyProducesCharLiteral(t *testing.T) {
	diags := diagnostic.NewEngine(diagnostic.DefaultConfig())

	got := StringifyArgument([]token.Token{ident("a")}, diags, true, loc(0), loc(3))

	assert.Equal(t, token.Char, got.Kind)
	assert.Equal(t, `'a'`, got.Spelling)
	assert.Empty(t, diags.Diagnostics())
}

func TestCharifyDiagnosesWrongWidth(t *testing.T) {
	tests := []struct {
		name string
		toks []token.Token
		want string
	}{
		{"Multiple characters", []token.Token{ident("ab")}, `'ab'`},
		{"Empty contents", nil, `''`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.NewEngine(diagnostic.DefaultConfig())
			got := StringifyArgument(tt.toks, diags, true, loc(0), loc(3))

			assert.Equal(t, tt.want, got.Spelling, "best-effort result is still produced")
			require.Len(t, diags.Warnings(), 1)
			assert.Equal(t, CodeInvalidCharLiteral, diags.Warnings()[0].Code)
		})
	}
}

func TestCharifyCountsEscapePairAsOne(t *testing.T) {
	diags := diagnostic.NewEngine(diagnostic.DefaultConfig())

	// Charifying the char literal '\'' body: escaping yields one
	// backslash pair plus the quote characters... use a simple literal.
	got := StringifyArgument([]token.Token{tk(token.Invalid, `\n`)}, diags, true, loc(0), loc(2))

	assert.Equal(t, `'\n'`, got.Spelling)
	assert.Empty(t, diags.Diagnostics())
}
