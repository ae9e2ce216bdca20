// Diagnostic reporting for the Kestrel preprocessor.
// The preprocessor core never formats or prints diagnostics itself; it
// reports them through a Sink and the surrounding driver decides what
// to do with them.

package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrel-lang/kestrel/internal/position"
)

// Level represents the severity level of a diagnostic message.
type Level int

const (
	Error Level = iota
	Warning
	Info
	Hint
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code    string
	Message string
	Span    position.Span
	Level   Level
}

// String returns the diagnostic in file:line:col form.
func (d *Diagnostic) String() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s[%s]: %s", d.Span.Start, d.Level, d.Code, d.Message)
	}

	return fmt.Sprintf("%s[%s]: %s", d.Level, d.Code, d.Message)
}

// Sink receives diagnostics as they are produced. Implementations must
// not retain the pointer past the call.
type Sink interface {
	Report(d *Diagnostic)
}

// Builder helps construct diagnostic messages with a fluent API.
type Builder struct {
	diagnostic *Diagnostic
}

// New creates a new diagnostic builder.
func New() *Builder {
	return &Builder{diagnostic: &Diagnostic{}}
}

func (b *Builder) Error() *Builder {
	b.diagnostic.Level = Error

	return b
}

func (b *Builder) Warning() *Builder {
	b.diagnostic.Level = Warning

	return b
}

func (b *Builder) Info() *Builder {
	b.diagnostic.Level = Info

	return b
}

func (b *Builder) Code(code string) *Builder {
	b.diagnostic.Code = code

	return b
}

func (b *Builder) Message(format string, args ...any) *Builder {
	b.diagnostic.Message = fmt.Sprintf(format, args...)

	return b
}

func (b *Builder) Span(span position.Span) *Builder {
	b.diagnostic.Span = span

	return b
}

func (b *Builder) Build() *Diagnostic {
	return b.diagnostic
}

// ReportTo builds the diagnostic and sends it to the sink. A nil sink
// drops the diagnostic.
func (b *Builder) ReportTo(sink Sink) {
	if sink == nil {
		return
	}

	sink.Report(b.diagnostic)
}

// Engine collects diagnostics for one preprocessing run. It implements Sink.
type Engine struct {
	diagnostics []Diagnostic
	config      Config
}

// Config controls diagnostic collection behavior.
type Config struct {
	IgnoreCodes      []string
	MaxErrors        int
	WarningsAsErrors bool
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{MaxErrors: 100}
}

// NewEngine creates a new diagnostic engine.
func NewEngine(config Config) *Engine {
	if config.MaxErrors <= 0 {
		config.MaxErrors = DefaultConfig().MaxErrors
	}

	return &Engine{
		diagnostics: make([]Diagnostic, 0),
		config:      config,
	}
}

// Report adds a diagnostic to the engine.
func (e *Engine) Report(d *Diagnostic) {
	if e.shouldIgnore(d) {
		return
	}

	if e.config.WarningsAsErrors && d.Level == Warning {
		d.Level = Error
	}

	if d.Level == Error && e.errorCount() >= e.config.MaxErrors {
		return
	}

	e.diagnostics = append(e.diagnostics, *d)
}

// shouldIgnore checks if a diagnostic should be dropped based on config.
func (e *Engine) shouldIgnore(d *Diagnostic) bool {
	for _, code := range e.config.IgnoreCodes {
		if d.Code == code {
			return true
		}
	}

	return false
}

func (e *Engine) errorCount() int {
	count := 0

	for _, d := range e.diagnostics {
		if d.Level == Error {
			count++
		}
	}

	return count
}

// Diagnostics returns all collected diagnostics.
func (e *Engine) Diagnostics() []Diagnostic {
	return e.diagnostics
}

// Errors returns only error-level diagnostics.
func (e *Engine) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)

	for _, d := range e.diagnostics {
		if d.Level == Error {
			errors = append(errors, d)
		}
	}

	return errors
}

// Warnings returns only warning-level diagnostics.
func (e *Engine) Warnings() []Diagnostic {
	warnings := make([]Diagnostic, 0)

	for _, d := range e.diagnostics {
		if d.Level == Warning {
			warnings = append(warnings, d)
		}
	}

	return warnings
}

// HasErrors returns true if any error-level diagnostic was collected.
func (e *Engine) HasErrors() bool {
	return e.errorCount() > 0
}

// Clear removes all collected diagnostics.
func (e *Engine) Clear() {
	e.diagnostics = e.diagnostics[:0]
}

// Sort orders diagnostics by source position, then severity.
func (e *Engine) Sort() {
	sort.Slice(e.diagnostics, func(i, j int) bool {
		a, b := e.diagnostics[i], e.diagnostics[j]

		if a.Span.Start.Filename != b.Span.Start.Filename {
			return a.Span.Start.Filename < b.Span.Start.Filename
		}

		if a.Span.Start.Offset != b.Span.Start.Offset {
			return a.Span.Start.Offset < b.Span.Start.Offset
		}

		return a.Level < b.Level
	})
}

// Format returns a human-readable rendering of all collected diagnostics.
func (e *Engine) Format() string {
	if len(e.diagnostics) == 0 {
		return ""
	}

	e.Sort()

	var result strings.Builder

	for i := range e.diagnostics {
		if i > 0 {
			result.WriteString("\n")
		}

		result.WriteString(e.diagnostics[i].String())
	}

	return result.String()
}
