package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Kind classifies a domain error. The HTTP layer maps every kind to a status code.
type Kind int

const (
	KindServerError Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
	KindInvalidCredentials
)

// String returns the machine readable code used in error responses.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal_error"
	}
}

// Error is a classified error whose Message is safe to show to API clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError returns an Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError returns a bad request error carrying a field level message.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or KindServerError.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindServerError
}

// Sentinel errors. Compare with errors.Is.
var (
	ErrUserNotFound       = NewError(KindNotFound, "User not found")
	ErrEventNotFound      = NewError(KindNotFound, "Event not found")
	ErrDuplicateEmail     = NewError(KindConflict, "User already exists")
	ErrInvalidCredentials = NewError(KindInvalidCredentials, "Invalid credentials")
	ErrLoginUnknownEmail  = NewError(KindInvalidCredentials, "User not found")
	ErrAlreadyOrganizer   = NewError(KindInvalidState, "User is already an organizer")
	ErrNotOwner           = NewError(KindUnauthorized, "User not authorized")
	ErrInvalidToken       = NewError(KindUnauthorized, "Token is not valid")
	ErrForbidden          = NewError(KindForbidden, "Access denied. Only organizers can perform this action")
	ErrMissingFields      = NewError(KindBadRequest, "Please provide all required fields")
	ErrInvalidDate        = NewError(KindBadRequest, "Invalid date format")
	ErrAlreadyRegistered  = NewError(KindInvalidState, "User is already registered for this event")
	ErrNotRegistered      = NewError(KindInvalidState, "User is not registered for this event")
	ErrInvalidResetCode   = NewError(KindBadRequest, "Invalid or expired reset code")
	ErrInvalidImageType   = NewError(KindBadRequest, "Invalid file type. Please upload only images.")
	ErrImageExtension     = NewError(KindBadRequest, "Only image files (jpg, jpeg, png, gif) are allowed!")
	ErrImageTooLarge      = NewError(KindBadRequest, "File upload error: File too large")
)

// ValidID reports whether id is a well formed store identifier.
// Malformed ids are treated as absent records rather than server errors.
func ValidID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
