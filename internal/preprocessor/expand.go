package preprocessor

import (
	"github.com/kestrel-lang/kestrel/internal/token"
)

// Expander is the macro-expansion engine the argument core delegates to
// when an argument needs pre-expansion. Implementations must expand the
// sequence to a fixed point per the standard algorithm, including
// suppression of cyclic self-reference, and must terminate: on failure
// they report a diagnostic themselves and return a best-effort partial
// result. The input never contains an EOF marker.
type Expander interface {
	ExpandToFixedPoint(toks []token.Token) []token.Token
}

// MacroResolver answers whether an identifier currently names a macro
// that is eligible for expansion.
type MacroResolver interface {
	IsMacroName(name string) bool
}

// NeedsPreexpansion reports whether pre-expanding the argument run could
// change it. It returns false only when the run provably contains no
// expansion trigger: only identifier tokens can start a substitution,
// and only when they name a live macro. Any uncertainty, including a
// missing resolver, yields true. The run may carry its trailing EOF
// marker; scanning stops there.
func NeedsPreexpansion(toks []token.Token, defs MacroResolver) bool {
	if defs == nil {
		return true
	}

	for _, tok := range toks {
		if tok.IsEOF() {
			break
		}

		if tok.IsIdentifier() && defs.IsMacroName(tok.Spelling) {
			return true
		}
	}

	return false
}
