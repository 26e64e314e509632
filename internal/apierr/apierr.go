// Package apierr defines the failure kinds raised by the weatherstack client.
//
// Every failure leaving the request pipeline is an *Error carrying a Kind.
// Kind itself satisfies error, so callers match with
// errors.Is(err, apierr.KindAuthentication) or switch on apierr.KindOf(err).
package apierr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind discriminates the failure classes a caller can pattern-match on.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindRateLimitOrPlan
	KindInvalidRequest
	KindTransientNetwork
	KindResponseStructure
	KindLocationMismatch
	// KindProvider covers in-band codes and HTTP answers with no mapping.
	KindProvider
)

var kindNames = map[Kind]string{
	KindUnknown:           "UnknownError",
	KindAuthentication:    "AuthenticationError",
	KindRateLimitOrPlan:   "RateLimitOrPlanError",
	KindInvalidRequest:    "InvalidRequestError",
	KindTransientNetwork:  "TransientNetworkError",
	KindResponseStructure: "ResponseStructureError",
	KindLocationMismatch:  "LocationMismatchError",
	KindProvider:          "ProviderError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error makes a Kind usable as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

const maxPayloadSnippet = 512

// Error is the single error type of the taxonomy. It is never mutated after
// construction.
type Error struct {
	Kind       Kind
	Message    string
	Field      string
	Payload    string
	Code       int
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %q)", e.Field)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New builds an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Field builds an error that names the offending response or request field.
func Field(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// WithPayload returns a copy of e carrying a truncated raw payload snippet.
func (e *Error) WithPayload(raw []byte) *Error {
	cp := *e
	cp.Payload = Snippet(raw)
	return &cp
}

// WithStatus returns a copy of e carrying the HTTP status code.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.StatusCode = status
	return &cp
}

// Snippet trims raw to a size that is safe to attach to errors and logs.
func Snippet(raw []byte) string {
	if len(raw) <= maxPayloadSnippet {
		return string(raw)
	}
	cut := maxPayloadSnippet
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return string(raw[:cut]) + "..."
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
