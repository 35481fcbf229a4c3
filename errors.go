package sdui

import (
	"fmt"
)

type decodeErrKind int

const (
	malformedInput decodeErrKind = iota
	schemaViolation
	missingField
	unknownVariant
)

// DecodeError describes why a page document was rejected.
// Path locates the offending entry within the document, e.g.
// "content[3].destination.content[1]".
type DecodeError struct {
	Path string
	// Field is the missing field name for missing-field errors.
	Field string
	// Tag is the offending type tag for unknown-variant errors.
	Tag string

	kind    decodeErrKind
	message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.message
	}
	return e.Path + ": " + e.message
}

func newMalformedInput(cause error) error {
	return &DecodeError{
		kind:    malformedInput,
		message: fmt.Sprintf("malformed input: %v", cause),
	}
}

func newSchemaViolation(path, msg string, v ...interface{}) error {
	return &DecodeError{
		Path:    path,
		kind:    schemaViolation,
		message: fmt.Sprintf(msg, v...),
	}
}

func newMissingField(path, field string) error {
	return &DecodeError{
		Path:    path,
		Field:   field,
		kind:    missingField,
		message: fmt.Sprintf("missing field %q", field),
	}
}

func newUnknownVariant(path, tag string) error {
	return &DecodeError{
		Path:    path,
		Tag:     tag,
		kind:    unknownVariant,
		message: fmt.Sprintf("unknown content type %q", tag),
	}
}

func decodeErrIs(err error, kind decodeErrKind) bool {
	e, ok := err.(*DecodeError)
	return ok && e.kind == kind
}

// IsMalformedInput checks if the given error means the input was not
// parseable as a keyed document at all.
func IsMalformedInput(err error) bool {
	return decodeErrIs(err, malformedInput)
}

// IsSchemaViolation checks if the given error means the document parsed
// but violates the page schema.
func IsSchemaViolation(err error) bool {
	return decodeErrIs(err, schemaViolation)
}

// IsMissingField checks if the given error reports a required field
// absent from a content entry.
func IsMissingField(err error) bool {
	return decodeErrIs(err, missingField)
}

// IsUnknownVariant checks if the given error reports a type tag outside
// the closed set of node kinds.
func IsUnknownVariant(err error) bool {
	return decodeErrIs(err, unknownVariant)
}

type unrepresentable struct {
	message string
}

func (u unrepresentable) Error() string {
	return u.message
}

func newUnrepresentable(msg string, v ...interface{}) error {
	return unrepresentable{fmt.Sprintf(msg, v...)}
}

// IsUnrepresentable checks if the given error means a value could not
// be serialized, e.g. a non-finite number.
func IsUnrepresentable(err error) bool {
	_, ok := err.(unrepresentable)
	return ok
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error was produced by Validate.
func IsValidationError(err error) bool {
	_, ok := err.(validationError)
	return ok
}

type submitErrKind int

const (
	invalidEndpoint submitErrKind = iota
	serverError
	transportFailure
)

// SubmitError is the structured reason for a failed submission.
// The user-facing message is a uniform "submit failed"; callers that
// log can inspect the predicates and Status.
type SubmitError struct {
	// Status is the HTTP status for server rejections, 0 otherwise.
	Status int

	kind  submitErrKind
	cause error
}

func (e *SubmitError) Error() string {
	switch e.kind {
	case invalidEndpoint:
		return fmt.Sprintf("submit failed: invalid endpoint: %v", e.cause)
	case serverError:
		return fmt.Sprintf("submit failed: got HTTP status %v", e.Status)
	default:
		return fmt.Sprintf("submit failed: %v", e.cause)
	}
}

func (e *SubmitError) Unwrap() error {
	return e.cause
}

func newInvalidEndpoint(endpoint string) error {
	return &SubmitError{
		kind:  invalidEndpoint,
		cause: fmt.Errorf("%q is not a usable URL", endpoint),
	}
}

func newServerError(status int) error {
	return &SubmitError{kind: serverError, Status: status}
}

func newTransportFailure(cause error) error {
	return &SubmitError{kind: transportFailure, cause: cause}
}

func submitErrIs(err error, kind submitErrKind) bool {
	e, ok := err.(*SubmitError)
	return ok && e.kind == kind
}

// IsInvalidEndpoint checks if the submission target could not be
// interpreted as a destination.
func IsInvalidEndpoint(err error) bool {
	return submitErrIs(err, invalidEndpoint)
}

// IsServerError checks if the transport succeeded but the server
// rejected the submission.
func IsServerError(err error) bool {
	return submitErrIs(err, serverError)
}

// IsTransportFailure checks if the submission failed at the network
// level.
func IsTransportFailure(err error) bool {
	return submitErrIs(err, transportFailure)
}
