package preprocessor

import (
	"strings"
	"unicode/utf8"

	"github.com/kestrel-lang/kestrel/internal/diagnostic"
	"github.com/kestrel-lang/kestrel/internal/position"
	"github.com/kestrel-lang/kestrel/internal/token"
)

// StringifyArgument converts an argument's token sequence into the
// single string-literal token the # operator produces. Spellings are
// concatenated in order with one space between adjacent tokens that
// were whitespace-separated in the source or that would merge if
// re-lexed back to back. Inside string and character literal
// spellings, every backslash and double quote gains a preceding
// backslash. With charify set the result is wrapped as a character
// literal instead (the #@ extension).
//
// The function is stateless. toks may carry its trailing EOF marker;
// concatenation stops there. Malformed content is reported through
// sink and repaired best-effort; stringizing never aborts.
func StringifyArgument(toks []token.Token, sink diagnostic.Sink, charify bool, locStart, locEnd position.Position) token.Token {
	var body strings.Builder

	for i := 0; i < len(toks) && !toks[i].IsEOF(); i++ {
		tok := toks[i]

		if body.Len() > 0 && (tok.LeadingSpace || unsafeToPaste(toks[i-1], tok)) {
			body.WriteByte(' ')
		}

		if tok.IsLiteral() {
			writeEscaped(&body, tok.Spelling)
		} else {
			body.WriteString(tok.Spelling)
		}
	}

	span := position.NewSpan(locStart, locEnd)
	text := body.String()

	// An odd run of trailing backslashes would escape the closing
	// quote. Only a stray non-literal backslash token can produce one,
	// since literal spellings have all their backslashes doubled.
	if trailingBackslashes(text)%2 == 1 {
		diagnostic.New().
			Warning().
			Code(CodeInvalidStringLiteral).
			Message("invalid string literal, ignoring final backslash").
			Span(span).
			ReportTo(sink)

		text = text[:len(text)-1]
	}

	kind := token.String
	quote := byte('"')

	if charify {
		kind = token.Char
		quote = '\''

		if n := spelledCharCount(text); n != 1 {
			diagnostic.New().
				Warning().
				Code(CodeInvalidCharLiteral).
				Message("charized token spells %d characters, expected exactly one", n).
				Span(span).
				ReportTo(sink)
		}
	}

	var spelling strings.Builder
	spelling.Grow(len(text) + 2)
	spelling.WriteByte(quote)
	spelling.WriteString(text)
	spelling.WriteByte(quote)

	return token.Token{
		Kind:     kind,
		Spelling: spelling.String(),
		Span:     span,
	}
}

// writeEscaped copies a literal spelling, escaping backslashes and
// double quotes as C99 6.10.3.2p2 requires.
func writeEscaped(b *strings.Builder, spelling string) {
	for i := 0; i < len(spelling); i++ {
		c := spelling[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}

		b.WriteByte(c)
	}
}

// unsafeToPaste reports whether two adjacent spellings would lex as a
// different token without a separating space, e.g. two identifiers or
// an identifier against a number.
func unsafeToPaste(prev, cur token.Token) bool {
	a, b := prev.Spelling, cur.Spelling
	if a == "" || b == "" {
		return false
	}

	return isIdentChar(a[len(a)-1]) && isIdentChar(b[0])
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// trailingBackslashes counts the backslashes immediately before the end
// of s.
func trailingBackslashes(s string) int {
	n := 0

	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}

	return n
}

// spelledCharCount counts source characters in an escaped literal body,
// treating each backslash escape pair as one character.
func spelledCharCount(s string) int {
	count := 0

	for i := 0; i < len(s); count++ {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2

			continue
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}

	return count
}
