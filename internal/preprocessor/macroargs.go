package preprocessor

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/position"
	"github.com/kestrel-lang/kestrel/internal/token"
)

// MacroArgs captures the formal arguments supplied to one function-like
// macro invocation. The raw token buffer holds every argument's
// unexpanded tokens concatenated together, with an EOF marker after
// each argument; an argument's length never counts its marker. The two
// derived forms, pre-expanded tokens and the stringized token, are
// computed lazily and memoized per argument index until the record is
// recycled.
//
// For a variadic macro invoked with the trailing parameter elided, the
// buffer still carries an empty run for it, so the argument count
// always equals the macro's declared arity.
type MacroArgs struct {
	buf []token.Token

	numArgs       int
	varargsElided bool

	// preExpanded[i] is nil until computed, then non-empty and
	// EOF-terminated. stringified[i] is the zero Token until computed.
	preExpanded [][]token.Token
	stringified []token.Token
}

// reset re-arms a recycled record for a new invocation. The buffer is
// overwritten in place; the caller guarantees it fits.
func (ma *MacroArgs) reset(raw []token.Token, numArgs int, varargsElided bool) {
	ma.buf = ma.buf[:len(raw)]
	copy(ma.buf, raw)

	ma.numArgs = numArgs
	ma.varargsElided = varargsElided
	ma.preExpanded = nil
	ma.stringified = nil
}

// NumArguments returns the number of arguments this invocation
// supplied, counting an elided variadic parameter as one empty
// argument.
func (ma *MacroArgs) NumArguments() int {
	return ma.numArgs
}

// IsVarargsElided returns true if this is a variadic macro invocation
// and no tokens were supplied for the trailing parameter. If the
// argument was supplied (even empty) or the macro is not variadic,
// this returns false.
func (ma *MacroArgs) IsVarargsElided() bool {
	return ma.varargsElided
}

// UnexpArgument returns the unexpanded token run for argument i,
// positioned at the run's first token and extending through the rest
// of the buffer. Use ArgLength to find where the run ends. An
// out-of-range index is a caller bug and panics.
func (ma *MacroArgs) UnexpArgument(i int) []token.Token {
	if i < 0 || i >= ma.numArgs {
		panic(fmt.Sprintf("preprocessor: argument index %d out of range [0,%d)", i, ma.numArgs))
	}

	start := 0

	for seen := 0; seen < i; start++ {
		if ma.buf[start].IsEOF() {
			seen++
		}
	}

	return ma.buf[start:]
}

// ArgLength returns the number of tokens in the argument run starting
// at toks[0], not counting the terminating EOF marker. It is a pure
// function of the buffer and works on unexpanded and pre-expanded runs
// alike.
func ArgLength(toks []token.Token) int {
	for i := range toks {
		if toks[i].IsEOF() {
			return i
		}
	}

	panic("preprocessor: argument run is not EOF-terminated")
}

// PreExpArgument returns the fully macro-expanded form of argument i,
// EOF-terminated. The expansion engine runs at most once per index per
// record lifetime; later calls return the memoized sequence untouched.
// If the session's nesting limit is hit, the unexpanded run is cached
// as the best-effort result.
func (ma *MacroArgs) PreExpArgument(s *Session, i int) []token.Token {
	run := ma.UnexpArgument(i)

	if ma.preExpanded == nil {
		ma.preExpanded = make([][]token.Token, ma.numArgs)
	}

	if ma.preExpanded[i] != nil {
		return ma.preExpanded[i]
	}

	n := ArgLength(run)
	eof := run[n]

	if !s.enterExpansion(runSpan(run, n)) {
		result := make([]token.Token, n+1)
		copy(result, run[:n+1])
		ma.preExpanded[i] = result

		return result
	}

	expanded := s.expander.ExpandToFixedPoint(run[:n:n])
	s.leaveExpansion()

	result := make([]token.Token, 0, len(expanded)+1)
	result = append(result, expanded...)
	result = append(result, eof)
	ma.preExpanded[i] = result

	return result
}

// StringifiedArgument returns the single string-literal token produced
// by applying the # operator to argument i, reporting the given
// expansion range as its location. The first call computes and caches
// the token; later calls return the cache even if they pass different
// locations.
func (ma *MacroArgs) StringifiedArgument(s *Session, i int, locStart, locEnd position.Position) token.Token {
	run := ma.UnexpArgument(i)

	if ma.stringified == nil {
		ma.stringified = make([]token.Token, ma.numArgs)
	}

	if ma.stringified[i].Kind != token.Invalid {
		return ma.stringified[i]
	}

	ma.stringified[i] = StringifyArgument(run, s.diags, false, locStart, locEnd)

	return ma.stringified[i]
}

// runSpan returns the source range covered by an argument run of n
// tokens, falling back to the EOF marker's span for an empty run.
func runSpan(run []token.Token, n int) position.Span {
	if n == 0 {
		return run[0].Span
	}

	return run[0].Span.Union(run[n-1].Span)
}
