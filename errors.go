package writepayload

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/payload"
	"github.com/zero-day-ai/writepayload/scope"
)

// Sentinel errors for Writer setup.
var (
	// ErrNoRegistry indicates a Writer created without attribute descriptors.
	ErrNoRegistry = errors.New("no attribute registry configured")

	// ErrNilRecord indicates a Build or Commit call without a root record.
	ErrNilRecord = errors.New("nil root record")
)

// Error kinds categorize errors by their type.
const (
	// KindConfiguration represents errors in how models, descriptors or the
	// Writer are set up. Retrying does not help.
	KindConfiguration = "configuration"

	// KindValidation represents errors in the arguments of a call, such as a
	// malformed include directive.
	KindValidation = "validation"

	// KindInternal represents unexpected failures.
	KindInternal = "internal"
)

// Error is a structured error that wraps underlying errors with the
// operation that failed and the category of error.
//
// Error supports unwrapping, so errors.Is and errors.As reach the sentinel
// and typed errors of the sub-packages:
//
//	doc, err := w.Build(ctx, author, "books")
//	var cfgErr *payload.ConfigError
//	if errors.As(err, &cfgErr) {
//		log.Printf("bad model at %s", cfgErr.Path)
//	}
type Error struct {
	// Op is the operation that failed (e.g. "Writer.Build").
	Op string

	// Kind categorizes the error (e.g. KindConfiguration).
	Kind string

	// Err is the underlying error.
	Err error

	// Context carries optional debugging information such as the record.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("writepayload: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("writepayload: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("writepayload: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, and by Op when the target sets one.
// Anything else is delegated to the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind && (t.Op == "" || e.Op == t.Op) {
			return true
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of e with ctx merged into its context.
func (e *Error) WithContext(ctx map[string]any) *Error {
	out := *e
	out.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		out.Context[k] = v
	}
	for k, v := range ctx {
		out.Context[k] = v
	}
	return &out
}

// NewConfigurationError creates an Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewValidationError creates an Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewInternalError creates an Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// wrap classifies err from a sub-package.
func wrap(op string, err error) *Error {
	var cfgErr *payload.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return NewConfigurationError(op, err).WithContext(map[string]any{"record": cfgErr.Record})
	case errors.Is(err, attribute.ErrTypeNotRegistered), errors.Is(err, ErrNoRegistry):
		return NewConfigurationError(op, err)
	case errors.Is(err, scope.ErrInvalidDirective), errors.Is(err, ErrNilRecord):
		return NewValidationError(op, err)
	default:
		return NewInternalError(op, err)
	}
}
