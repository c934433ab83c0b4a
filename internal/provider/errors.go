// Package provider defines the shared failure taxonomy for external data
// providers. Every adapter maps its raw failures onto one of these kinds so
// the aggregation layer can render each source's outcome independently.
package provider

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind string

const (
	// KindNotFound means the provider answered but could not match the
	// requested location (HTTP 404, unknown city).
	KindNotFound Kind = "not_found"

	// KindTransport covers network errors, timeouts, malformed payloads and
	// unexpected status codes.
	KindTransport Kind = "transport_failure"

	// KindSkipped marks a source that was never invoked because its
	// prerequisite (the weather lookup that supplies coordinates) failed.
	KindSkipped Kind = "skipped"
)

// Error is a typed provider failure carrying the source name and the
// underlying cause.
type Error struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound wraps err as a not-found failure for the named provider.
func NotFound(provider string, err error) error {
	return &Error{Kind: KindNotFound, Provider: provider, Err: err}
}

// Transport wraps err as a transport failure for the named provider.
func Transport(provider string, err error) error {
	return &Error{Kind: KindTransport, Provider: provider, Err: err}
}

// Skipped marks the named provider as never invoked.
func Skipped(provider string) error {
	return &Error{Kind: KindSkipped, Provider: provider}
}

// KindOf extracts the failure kind from err. Unclassified errors are
// reported as transport failures.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindTransport
}
