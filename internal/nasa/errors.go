package nasa

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an upstream failure for propagation policy.
type ErrorKind string

const (
	// KindUnavailable covers network errors, timeouts and 5xx responses.
	// Transient: a retry may succeed.
	KindUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	// KindRejected covers 4xx responses and invalid caller parameters.
	// Permanent: retrying the same request will fail again.
	KindRejected ErrorKind = "UPSTREAM_REJECTED"
	// KindMalformed means the body decoded but lacks required keys or shape.
	KindMalformed ErrorKind = "MALFORMED_UPSTREAM_PAYLOAD"
)

// Error is the typed failure every adapter and normalizer returns.
type Error struct {
	Kind    ErrorKind
	Status  int // HTTP status when the upstream answered, 0 otherwise
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the ErrorKind from err, defaulting to KindUnavailable for
// errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindUnavailable
}

func unavailable(msg string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Cause: cause}
}

func rejected(msg string) *Error {
	return &Error{Kind: KindRejected, Message: msg}
}

// Malformed builds a KindMalformed error. Exported because the normalizers
// report missing required keys with the same taxonomy.
func Malformed(format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Message: fmt.Sprintf(format, args...)}
}

func statusError(status int, body string) *Error {
	e := &Error{Status: status, Message: body}
	if status >= 500 {
		e.Kind = KindUnavailable
	} else {
		e.Kind = KindRejected
	}
	return e
}
