package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindConflict       ErrKind = "conflict"       // 400: duplicate email is a client error in this API
	KindNotFound       ErrKind = "not_found"      // 404
	KindInfrastructure ErrKind = "infrastructure" // 500
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: exact client-facing string; the HTTP error contract pins these
// - Cause: wrapped internal error for logging/diagnostics, never sent to clients
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "Invalid JSON body", cause)
}

func ErrMissingCredentials() *Error {
	return New(KindValidation, "missing_credentials", "Email and password required")
}

func ErrMissingTitle() *Error {
	return New(KindValidation, "missing_title", "Title required")
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: use this for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "Invalid credentials")
}

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "Unauthorized")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "Unauthorized")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "Unauthorized")
}

// ----------------------
// Conflict (mapped to 400 by the HTTP contract)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "Email already registered")
}

// ----------------------
// Not Found (404)
// ----------------------

// ErrWorkflowNotFound covers both "no such workflow" and "workflow owned by
// someone else"; callers must not be able to tell the two apart.
func ErrWorkflowNotFound() *Error {
	return New(KindNotFound, "workflow_not_found", "Not found")
}

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "Not found")
}

// ----------------------
// Infrastructure / internal (500)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "Internal server error", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "Internal server error", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "Internal server error", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "Internal server error", cause)
}
