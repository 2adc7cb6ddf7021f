package helpers

import (
	"encoding/json"
	"net/http"

	"evently/internal/domain"
)

// APIError is the body of every error response.
// swagger:model APIError
type APIError struct {
	Msg  string `json:"msg"`
	Code string `json:"code"`
}

// MessageResponse is the body of responses that only confirm an action.
// swagger:model MessageResponse
type MessageResponse struct {
	Msg string `json:"msg"`
}

// serverErrorMessage is shown for unexpected failures when internal details are hidden.
const serverErrorMessage = "Server error"

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes data.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage writes {"msg": msg} with the given status.
func WriteMessage(w http.ResponseWriter, statusCode int, msg string) {
	WriteJSON(w, statusCode, MessageResponse{Msg: msg})
}

// WriteJSONError writes an APIError with the given status, code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIError{Msg: message, Code: code})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindBadRequest, domain.KindConflict, domain.KindInvalidState, domain.KindInvalidCredentials:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err with the status of its kind. The message of an unclassified
// error is only revealed when exposeInternal is set.
func WriteError(w http.ResponseWriter, err error, exposeInternal bool) {
	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == domain.KindServerError {
		if exposeInternal {
			msg = serverErrorMessage + ": " + msg
		} else {
			msg = serverErrorMessage
		}
	}
	WriteJSONError(w, StatusFor(kind), kind.String(), msg)
}
