package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Stdlib pass-throughs so callers need only one errors import.

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target
func As(err error, target any) bool { return stderrors.As(err, target) }

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit      Phase = "init"      // native library binding
	PhaseOpen      Phase = "open"      // document parsing/loading
	PhaseRender    Phase = "render"    // page rasterization
	PhaseText      Phase = "text"      // text layer extraction
	PhaseSearch    Phase = "search"    // document search
	PhaseRegistry  Phase = "registry"  // open-document bookkeeping
	PhaseTransport Phase = "transport" // job queue and reply delivery
)

// Kind categorizes the error
type Kind string

const (
	KindBindFailed   Kind = "bind_failed"
	KindParse        Kind = "parse"
	KindNotLoaded    Kind = "not_loaded"
	KindPageRange    Kind = "page_out_of_range"
	KindRenderFailed Kind = "render_failed"
	KindEngine       Kind = "engine"
	KindInvalidInput Kind = "invalid_input"
	KindActorStopped Kind = "actor_stopped"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Key    string
	Detail string

	// Page is the zero-based page index the error refers to, or -1 when the
	// error is not about a specific page.
	Page int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Key != "" {
		b.WriteString(" key ")
		b.WriteString(fmt.Sprintf("%q", e.Key))
	}

	if e.Page >= 0 {
		b.WriteString(fmt.Sprintf(" page %d", e.Page))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Page:  -1,
		},
	}
}

// Key sets the document key
func (b *Builder) Key(key string) *Builder {
	b.err.Key = key
	return b
}

// Page sets the page index
func (b *Builder) Page(page int) *Builder {
	b.err.Page = page
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotLoaded creates an error for an operation against an unknown key
func NotLoaded(phase Phase, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotLoaded,
		Key:    key,
		Page:   -1,
		Detail: "document not loaded",
	}
}

// PageOutOfRange creates an error for a page index outside the document
func PageOutOfRange(phase Phase, key string, page, pageCount int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPageRange,
		Key:    key,
		Page:   page,
		Detail: fmt.Sprintf("document has %d page(s)", pageCount),
	}
}

// ParseFailed creates a document load/parse error
func ParseFailed(key string, cause error) *Error {
	return &Error{
		Phase:  PhaseOpen,
		Kind:   KindParse,
		Key:    key,
		Page:   -1,
		Detail: "parse document",
		Cause:  cause,
	}
}

// RenderFailed creates a rasterization error
func RenderFailed(key string, page int, cause error) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindRenderFailed,
		Key:    key,
		Page:   page,
		Detail: "render page",
		Cause:  cause,
	}
}

// ActorStopped creates the transport error returned for every operation
// submitted to a service whose actor has exited
func ActorStopped(detail string) *Error {
	return &Error{
		Phase:  PhaseTransport,
		Kind:   KindActorStopped,
		Page:   -1,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Page:   -1,
		Detail: detail,
	}
}

// Engine wraps an error reported by the native library
func Engine(phase Phase, key string, page int, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEngine,
		Key:    key,
		Page:   page,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Page:   -1,
		Detail: detail,
		Cause:  cause,
	}
}

// IsActorStopped reports whether err is the transport-level "service is
// gone" error, as opposed to an operation-level failure
func IsActorStopped(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindActorStopped
}

// IsNotLoaded reports whether err is a missing-key error
func IsNotLoaded(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindNotLoaded
}

// IsPageOutOfRange reports whether err is a page range error
func IsPageOutOfRange(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindPageRange
}

// BindAttempt records one failed candidate of the library discovery chain
type BindAttempt struct {
	Location string // e.g. "/usr/local/lib"
	Err      error
}

// BindError is returned when no candidate location yields a usable native
// library. It is fatal to PDF functionality; the actor is never created.
type BindError struct {
	Attempts []BindAttempt
}

// NewBindError creates an error from the ordered list of failed candidates
func NewBindError(attempts []BindAttempt) *BindError {
	return &BindError{Attempts: attempts}
}

func (e *BindError) Error() string {
	if len(e.Attempts) == 0 {
		return "[init] bind_failed: no candidate locations"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[init] bind_failed: %d candidate(s) failed:\n", len(e.Attempts)))
	for _, a := range e.Attempts {
		b.WriteString("  ")
		b.WriteString(a.Location)
		b.WriteString(": ")
		b.WriteString(a.Err.Error())
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *BindError) Is(target error) bool {
	_, ok := target.(*BindError)
	return ok
}
