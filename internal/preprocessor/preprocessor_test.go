package preprocessor

import (
	"github.com/kestrel-lang/kestrel/internal/position"
	"github.com/kestrel-lang/kestrel/internal/token"
)

// Shared test fixtures for the preprocessor package.

// tk builds a token without leading whitespace.
func tk(kind token.Kind, spelling string) token.Token {
	return token.Token{Kind: kind, Spelling: spelling}
}

// tkSp builds a token preceded by whitespace in the source.
func tkSp(kind token.Kind, spelling string) token.Token {
	return token.Token{Kind: kind, Spelling: spelling, LeadingSpace: true}
}

func ident(spelling string) token.Token {
	return tk(token.Identifier, spelling)
}

// argBuf concatenates argument runs into a raw invocation buffer,
// terminating each run with an EOF marker.
func argBuf(runs ...[]token.Token) []token.Token {
	var buf []token.Token

	for _, run := range runs {
		buf = append(buf, run...)
		buf = append(buf, token.EOFMarker(position.Span{}))
	}

	return buf
}

// fakeExpander is a scripted expansion engine. The zero value echoes
// its input unchanged.
type fakeExpander struct {
	calls  int
	expand func([]token.Token) []token.Token
}

func (f *fakeExpander) ExpandToFixedPoint(toks []token.Token) []token.Token {
	f.calls++

	if f.expand == nil {
		return toks
	}

	return f.expand(toks)
}

// macroSet is a MacroResolver backed by a name set.
type macroSet map[string]bool

func (m macroSet) IsMacroName(name string) bool {
	return m[name]
}

func newTestSession(exp Expander) *Session {
	s, err := NewSession(exp, nil, DefaultSessionConfig())
	if err != nil {
		panic(err)
	}

	return s
}

func loc(offset int) position.Position {
	return position.Position{Filename: "test.ksl", Line: 1, Column: offset + 1, Offset: offset}
}
