// Package token defines the lexical tokens consumed by the Kestrel
// preprocessor. The lexer produces these; this package only describes
// them. The EOF kind doubles as the internal delimiter between macro
// argument runs and never appears as a real program token.
package token

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/position"
)

// Kind represents the type of a token.
type Kind int

// Token kinds recognized by the preprocessor.
const (
	// Special tokens.
	Invalid Kind = iota
	EOF
	Comment

	// Literals.
	Identifier
	Integer
	Float
	String
	Char

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Not
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
	Question
	Arrow
	Ellipsis

	// Preprocessor operators.
	Hash
	HashHash
	HashAt
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// kindNames provides string representations for token kinds.
var kindNames = map[Kind]string{
	Invalid: "INVALID",
	EOF:     "EOF",
	Comment: "COMMENT",

	Identifier: "IDENTIFIER",
	Integer:    "INTEGER",
	Float:      "FLOAT",
	String:     "STRING",
	Char:       "CHAR",

	Plus:    "PLUS",
	Minus:   "MINUS",
	Star:    "STAR",
	Slash:   "SLASH",
	Percent: "PERCENT",
	Assign:  "ASSIGN",
	Eq:      "EQ",
	Ne:      "NE",
	Lt:      "LT",
	Le:      "LE",
	Gt:      "GT",
	Ge:      "GE",
	And:     "AND",
	Or:      "OR",
	Not:     "NOT",
	Amp:     "AMP",
	Pipe:    "PIPE",
	Caret:   "CARET",
	Tilde:   "TILDE",
	Shl:     "SHL",
	Shr:     "SHR",

	LParen:    "LPAREN",
	RParen:    "RPAREN",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	LBracket:  "LBRACKET",
	RBracket:  "RBRACKET",
	Semicolon: "SEMICOLON",
	Comma:     "COMMA",
	Dot:       "DOT",
	Colon:     "COLON",
	Question:  "QUESTION",
	Arrow:     "ARROW",
	Ellipsis:  "ELLIPSIS",

	Hash:     "HASH",
	HashHash: "HASHHASH",
	HashAt:   "HASHAT",
}

// Token represents a lexical token with position information.
type Token struct {
	Kind         Kind
	Spelling     string        // Exact source text of the token
	Span         position.Span // Source range covered by the token
	LeadingSpace bool          // True if whitespace preceded this token
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Kind: %s, Spelling: %q, Span: %s}", t.Kind, t.Spelling, t.Span)
}

// IsEOF returns true if this token is an end-of-sequence marker.
func (t Token) IsEOF() bool {
	return t.Kind == EOF
}

// IsLiteral returns true for string and character literal tokens,
// whose spellings need escaping when stringized.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Char
}

// IsIdentifier returns true for identifier tokens.
func (t Token) IsIdentifier() bool {
	return t.Kind == Identifier
}

// EOFMarker returns an end-of-sequence marker token carrying the given span.
func EOFMarker(span position.Span) Token {
	return Token{Kind: EOF, Span: span}
}
