package payload

import (
	"errors"
	"fmt"
)

// ErrUndefinedType indicates a record whose resource type is empty. It is a
// setup error in the calling code, not a runtime condition.
//
// Example:
//
//	_, err := builder.Build(ctx, rec, tree, false)
//	if errors.Is(err, payload.ErrUndefinedType) {
//	    log.Fatalf("model without resource type: %v", err)
//	}
var ErrUndefinedType = errors.New("undefined resource type")

// ConfigError reports a record that cannot be serialized because of how its
// type is set up. It aborts the whole build; no partial document is returned.
type ConfigError struct {
	// Path locates the record from the root, e.g. "books[1].genre".
	// Empty for the root record.
	Path string

	// Record describes the offending record.
	Record string

	// Err is ErrUndefinedType or attribute.ErrTypeNotRegistered.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("cannot serialize record %s at %s: %v", e.Record, path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
