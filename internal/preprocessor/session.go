// Package preprocessor implements the macro-argument core of the
// Kestrel preprocessor: storage for the formal arguments of one
// function-like macro invocation, lazy memoized pre-expansion and
// stringification, and a session-scoped free-list pool that recycles
// argument records on the hottest path of expansion.
package preprocessor

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/diagnostic"
	"github.com/kestrel-lang/kestrel/internal/position"
	"github.com/kestrel-lang/kestrel/internal/token"
)

// Diagnostic codes emitted by this package.
const (
	CodeInvalidStringLiteral = "PP0101"
	CodeInvalidCharLiteral   = "PP0102"
	CodeExpansionDepth       = "PP0103"
)

// SessionConfig controls per-session limits.
type SessionConfig struct {
	// MaxExpansionDepth bounds nested argument pre-expansion. Macro
	// nesting directly drives call-stack growth, so the bound is
	// mandatory; zero or negative selects the default.
	MaxExpansionDepth int
}

// DefaultSessionConfig returns the configuration used when none is supplied.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{MaxExpansionDepth: 512}
}

// PoolStats provides statistics for the argument record pool.
type PoolStats struct {
	Hits        uint64 // Requests satisfied from the free list
	Misses      uint64 // Requests that allocated a fresh record
	Releases    uint64 // Records retired to the free list
	FreeRecords int    // Records currently sitting in the free list
}

// Session owns the argument pool and collaborator hooks for one
// preprocessing run. It is single-threaded by contract: no record and
// no session may be touched from more than one goroutine.
type Session struct {
	expander Expander
	diags    diagnostic.Sink
	config   SessionConfig

	// Retired argument records, most recently released last. Records
	// keep their token buffers so a later NewArgs of equal or smaller
	// size never touches the general allocator.
	free []*MacroArgs

	depth int
	stats PoolStats
}

// NewSession creates a session around the given expansion engine and
// diagnostic sink. The sink may be nil, in which case recoverable
// diagnostics are dropped.
func NewSession(expander Expander, diags diagnostic.Sink, config SessionConfig) (*Session, error) {
	if expander == nil {
		return nil, fmt.Errorf("expander cannot be nil")
	}

	if config.MaxExpansionDepth <= 0 {
		config.MaxExpansionDepth = DefaultSessionConfig().MaxExpansionDepth
	}

	return &Session{
		expander: expander,
		diags:    diags,
		config:   config,
	}, nil
}

// NewArgs builds the argument record for one macro invocation. raw
// holds every argument's tokens concatenated in order, each run
// terminated by exactly one EOF marker; the argument count is derived
// from those markers. varargsElided records that a variadic invocation
// supplied nothing for the trailing parameter (the driver still passes
// an empty run for it).
//
// The smallest retired record whose buffer fits is reused when one
// exists; otherwise a record sized exactly to len(raw) is allocated.
// Either way the result has both caches empty.
func (s *Session) NewArgs(raw []token.Token, varargsElided bool) *MacroArgs {
	numArgs := 0

	for i := range raw {
		if raw[i].IsEOF() {
			numArgs++
		}
	}

	if len(raw) > 0 && !raw[len(raw)-1].IsEOF() {
		panic("preprocessor: macro argument buffer must end with an EOF marker")
	}

	if ma := s.takeBestFit(len(raw)); ma != nil {
		s.stats.Hits++
		ma.reset(raw, numArgs, varargsElided)

		return ma
	}

	s.stats.Misses++

	buf := make([]token.Token, len(raw))
	copy(buf, raw)

	return &MacroArgs{
		buf:           buf,
		numArgs:       numArgs,
		varargsElided: varargsElided,
	}
}

// takeBestFit removes and returns the smallest retired record whose
// buffer capacity is at least need, or nil if none fits.
func (s *Session) takeBestFit(need int) *MacroArgs {
	best := -1

	for i, ma := range s.free {
		if cap(ma.buf) < need {
			continue
		}

		if best < 0 || cap(ma.buf) < cap(s.free[best].buf) {
			best = i
		}
	}

	if best < 0 {
		return nil
	}

	ma := s.free[best]
	s.free = append(s.free[:best], s.free[best+1:]...)

	return ma
}

// Release retires an argument record once its invocation's expansion is
// fully complete, including any rescanning it triggered. Both caches
// are dropped; the token buffer is kept for reuse. The record must not
// be used again until NewArgs hands it back out.
func (s *Session) Release(ma *MacroArgs) {
	if ma == nil {
		return
	}

	ma.preExpanded = nil
	ma.stringified = nil

	s.free = append(s.free, ma)
	s.stats.Releases++
}

// Close tears the session down, releasing the free list for real. The
// pool holds buffers only until this point.
func (s *Session) Close() {
	s.free = nil
}

// Stats returns pool statistics for this session.
func (s *Session) Stats() PoolStats {
	stats := s.stats
	stats.FreeRecords = len(s.free)

	return stats
}

// enterExpansion claims one level of pre-expansion nesting. Exceeding
// the limit reports a diagnostic and refuses the claim; the caller then
// falls back to the unexpanded run.
func (s *Session) enterExpansion(span position.Span) bool {
	if s.depth >= s.config.MaxExpansionDepth {
		diagnostic.New().
			Error().
			Code(CodeExpansionDepth).
			Message("macro expansion nesting exceeds limit of %d", s.config.MaxExpansionDepth).
			Span(span).
			ReportTo(s.diags)

		return false
	}

	s.depth++

	return true
}

func (s *Session) leaveExpansion() {
	s.depth--
}
