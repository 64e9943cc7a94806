package core

import (
	"fmt"
	"strings"
)

// Error kinds are semantic, not exhaustively type-switched: every component
// boundary wraps its failure into one of these and the router renders its
// Error() string into error_message. See SPEC_FULL.md's ambient-stack note
// on error handling for why there is no structured logger here.

// TemplateSyntaxError reports a malformed {{...}} placeholder.
type TemplateSyntaxError struct {
	Template string
}

func (e *TemplateSyntaxError) Error() string {
	return fmt.Sprintf("malformed placeholder in template: %q", e.Template)
}

// MissingVariableError reports a strict substitution that could not resolve
// a user variable.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("variable %q is not defined", e.Name)
}

// UnknownFakerKindError reports a {{f:kind}} placeholder with no matching
// generator.
type UnknownFakerKindError struct {
	Kind string
}

func (e *UnknownFakerKindError) Error() string {
	return fmt.Sprintf("unknown faker kind %q", e.Kind)
}

// RequestTransportError wraps a DNS/connect/TLS/read/timeout failure from
// the HTTP executor.
type RequestTransportError struct {
	Description string
}

func (e *RequestTransportError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Description)
}

// SerializationError reports a persistence read/write failure.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("storage error for %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// ClipboardUnavailableError reports a failed clipboard write.
type ClipboardUnavailableError struct {
	Err error
}

func (e *ClipboardUnavailableError) Error() string {
	return fmt.Sprintf("clipboard unavailable: %v", e.Err)
}

func (e *ClipboardUnavailableError) Unwrap() error { return e.Err }

// ValidationError reports a form-level validation failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ErrorKind classifies a load-test failure for the metrics collector's
// errors map. Workers re-resolve templates on every request, so a template
// error reaches the collector like a transport failure and is classified
// by its message like any other error.
type ErrorKind string

const (
	ErrorKindTimeout    ErrorKind = "timeout"
	ErrorKindConnection ErrorKind = "connection"
	ErrorKindOther      ErrorKind = "other"
)

// ClassifyError derives an ErrorKind from an execution error using the same
// substring heuristics the teacher's HTTP tool uses to describe transport
// failures in its error strings.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ErrorKindOther
	}
	msg := err.Error()
	switch {
	case containsAny(msg, "timeout", "deadline exceeded", "Client.Timeout"):
		return ErrorKindTimeout
	case containsAny(msg, "connection refused", "no such host", "connection reset", "dial tcp", "EOF"):
		return ErrorKindConnection
	default:
		return ErrorKindOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
