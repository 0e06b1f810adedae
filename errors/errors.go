package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConfig    Phase = "config"    // configuration loading and validation
	PhaseEmbed     Phase = "embed"     // VM creation and injection
	PhaseAttach    Phase = "attach"    // thread attachment
	PhaseResolve   Phase = "resolve"   // class and member lookup
	PhaseInvoke    Phase = "invoke"    // constructor and method calls
	PhaseReference Phase = "reference" // global reference management
	PhaseParse     Phase = "parse"     // type signature parsing
)

// Kind categorizes the error
type Kind string

const (
	KindConfiguration    Kind = "configuration"
	KindNotFound         Kind = "not_found"
	KindException        Kind = "exception"
	KindAttach           Kind = "attach"
	KindArgumentMismatch Kind = "argument_mismatch"
	KindTypeMismatch     Kind = "type_mismatch"
	KindInvalidInput     Kind = "invalid_input"
	KindInvalidData      Kind = "invalid_data"
	KindNotInitialized   Kind = "not_initialized"
	KindUnsupported      Kind = "unsupported"
)

// Kind-only sentinels for errors.Is.
var (
	ErrConfiguration    = &Error{Kind: KindConfiguration}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrException        = &Error{Kind: KindException}
	ErrAttach           = &Error{Kind: KindAttach}
	ErrArgumentMismatch = &Error{Kind: KindArgumentMismatch}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Class     string
	Member    string
	Signature string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Class != "" {
		b.WriteString(" at ")
		b.WriteString(e.Class)
		if e.Member != "" {
			b.WriteByte('.')
			b.WriteString(e.Member)
		}
		b.WriteString(e.Signature)
	} else if e.Signature != "" {
		b.WriteString(" at ")
		b.WriteString(e.Signature)
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

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
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
		},
	}
}

// Class sets the slash-separated class name
func (b *Builder) Class(name string) *Builder {
	b.err.Class = name
	return b
}

// Member sets the member (method or field) name
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Signature sets the encoded type signature
func (b *Builder) Signature(sig string) *Builder {
	b.err.Signature = sig
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Configuration creates an embedding configuration error
func Configuration(detail string, args ...any) *Error {
	return New(PhaseEmbed, KindConfiguration).Detail(detail, args...).Build()
}

// NotFound creates a resolution error for a missing class or member.
// what is "class", "constructor", "method" or "field".
func NotFound(phase Phase, what, class, member, sig string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNotFound,
		Class:     class,
		Member:    member,
		Signature: sig,
		Detail:    what + " not found",
	}
}

// Exception creates an error carrying a pending JVM exception's rendered message
func Exception(phase Phase, message string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindException,
		Detail: message,
	}
}

// Attach creates a thread attachment error
func Attach(cause error) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindAttach,
		Detail: "attach current thread",
		Cause:  cause,
	}
}

// ArgumentMismatch creates an error for arguments that do not fit a resolved signature
func ArgumentMismatch(sig string, detail string, args ...any) *Error {
	return New(PhaseInvoke, KindArgumentMismatch).Signature(sig).Detail(detail, args...).Build()
}

// TypeMismatch creates an error for a Go result type that cannot hold the JVM return type
func TypeMismatch(phase Phase, goType, javaType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf("Go type %s cannot hold %s", goType, javaType),
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// ParseFailed creates a signature parsing error
func ParseFailed(input string, pos int, detail string) *Error {
	return &Error{
		Phase:     PhaseParse,
		Kind:      KindInvalidData,
		Signature: input,
		Detail:    fmt.Sprintf("offset %d: %s", pos, detail),
		Value:     pos,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// JavaName converts a slash-separated internal class name to its dotted form.
func JavaName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
