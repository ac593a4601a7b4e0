package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the action conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrUnverified indicates the account has not completed email verification.
var ErrUnverified = errors.New("email not verified")

// ErrTokenExpired indicates a one-time token (e.g. password reset) is past its expiry.
var ErrTokenExpired = errors.New("token expired")

// ErrGatewayAuth indicates the payment gateway refused or failed to issue an access token.
var ErrGatewayAuth = errors.New("payment gateway authentication failed")

// ErrGatewayTransport indicates the payment gateway could not be reached or answered garbage.
var ErrGatewayTransport = errors.New("payment gateway unavailable")

// AppError carries an HTTP status alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// GatewayRejection is returned when the payment gateway answered but declined the request.
// Payload is the gateway body, passed through to the client untouched.
type GatewayRejection struct {
	Payload map[string]any
}

func (e *GatewayRejection) Error() string {
	if msg, ok := e.Payload["errorMessage"].(string); ok && msg != "" {
		return "payment gateway rejected request: " + msg
	}
	if msg, ok := e.Payload["ResponseDescription"].(string); ok && msg != "" {
		return "payment gateway rejected request: " + msg
	}
	return "payment gateway rejected request"
}

// AsGatewayRejection unwraps err into a GatewayRejection if it is one.
func AsGatewayRejection(err error) (*GatewayRejection, bool) {
	var rej *GatewayRejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// KindError is an error of a known kind (one of the sentinels above) with a client-facing message.
// errors.Is(err, kind) holds, while Error() returns only the message.
type KindError struct {
	Kind    error
	Message string
}

func (e *KindError) Error() string {
	return e.Message
}

func (e *KindError) Is(target error) bool {
	return target == e.Kind
}

// Newf builds a KindError of the given kind.
func Newf(kind error, format string, args ...any) error {
	return &KindError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
