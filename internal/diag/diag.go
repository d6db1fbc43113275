// Package diag collects compiler diagnostics.
//
// Diagnostics are plain values appended to a Sink that is threaded
// explicitly through every compiler stage. The core never aborts on a
// semantic problem: stages record what they found and keep going, so one
// run reports as many problems as possible. Rendering (including color)
// happens only when the CLI prints the sink at the end of a compilation.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Severity classifies how bad a diagnostic is.
type Severity int

const (
	// Error marks the compilation as failed; the backend refuses to emit.
	Error Severity = iota
	// Warning is reported but does not fail the compilation.
	Warning
	// Info is purely informational.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Span is a source location. The parser fills it, descriptors carry it, and
// diagnostics render it as "file:line". The zero Span renders empty.
type Span struct {
	File string
	Line int
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool { return s.File == "" && s.Line == 0 }

func (s Span) String() string {
	if s.IsZero() {
		return ""
	}
	if s.File == "" {
		return fmt.Sprintf("line %d", s.Line)
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     Span
}

// String renders the diagnostic as "<loc>: <severity>: \n<message>".
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Span.String())
	sb.WriteString(": ")
	sb.WriteString(d.Severity.String())
	sb.WriteString(": \n")
	sb.WriteString(d.Message)
	return sb.String()
}

// Sink is an append-only store of diagnostics.
//
// A Sink is not safe for concurrent use; create one Sink per compilation
// (the compiler pipeline itself is single-threaded).
type Sink struct {
	diags     []Diagnostic
	numErrors int
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a diagnostic.
func (s *Sink) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
	if d.Severity == Error {
		s.numErrors++
	}
}

// Errorf records an Error diagnostic at span.
func (s *Sink) Errorf(span Span, format string, args ...interface{}) {
	s.Add(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Span: span})
}

// Warningf records a Warning diagnostic at span.
func (s *Sink) Warningf(span Span, format string, args ...interface{}) {
	s.Add(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Span: span})
}

// Infof records an Info diagnostic at span.
func (s *Sink) Infof(span Span, format string, args ...interface{}) {
	s.Add(Diagnostic{Severity: Info, Message: fmt.Sprintf(format, args...), Span: span})
}

// HasErrors reports whether any Error diagnostic was recorded.
func (s *Sink) HasErrors() bool { return s.numErrors > 0 }

// Len returns the number of recorded diagnostics.
func (s *Sink) Len() int { return len(s.diags) }

// Diagnostics returns the recorded diagnostics in emission order.
// The returned slice is owned by the sink; callers must not modify it.
func (s *Sink) Diagnostics() []Diagnostic { return s.diags }

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// Fprint writes every diagnostic to w, one per line group, in emission
// order. When colorize is set the severity word is colored by class.
func (s *Sink) Fprint(w io.Writer, colorize bool) {
	for _, d := range s.diags {
		if !colorize {
			fmt.Fprintf(w, "%s\n", d.String())
			continue
		}
		c := infoColor
		switch d.Severity {
		case Error:
			c = errorColor
		case Warning:
			c = warningColor
		}
		fmt.Fprintf(w, "%s: %s: \n%s\n", d.Span.String(), c.Sprint(d.Severity.String()), d.Message)
	}
}
