package client

import (
	"fmt"
	"net/http"
)

// Human-facing messages for each error class. Error UIs render these
// directly, so they stay stable even when the server wording changes.
const (
	MsgBadRequest   = "Invalid request - please check your input"
	MsgUnauthorized = "Unauthorized - please sign in"
	MsgForbidden    = "You do not have permission to perform this action"
	MsgNotFound     = "The requested resource was not found"
	MsgTimeout      = "Request timed out - please try again"
	MsgRateLimited  = "Too many requests - please slow down"
	MsgServerError  = "Server error - please try again later"
	MsgNetwork      = "Network error - please check your connection"
)

// APIError is the single error shape every failed call produces, whether
// the cause was a timeout, a refused connection or a non-2xx status.
// Callers branch on Status; Response carries the raw body for debugging.
type APIError struct {
	Status   int
	Message  string
	Response string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsTimeout reports whether err is an APIError with a 408 status.
func IsTimeout(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusRequestTimeout
}

// messageFor resolves a status code to its human-facing message. A message
// extracted from the server's error envelope wins for 400s, where the
// server names the actual validation problem.
func messageFor(status int, serverMessage string) string {
	switch {
	case status == http.StatusBadRequest:
		if serverMessage != "" {
			return serverMessage
		}
		return MsgBadRequest
	case status == http.StatusUnauthorized:
		return MsgUnauthorized
	case status == http.StatusForbidden:
		return MsgForbidden
	case status == http.StatusNotFound:
		return MsgNotFound
	case status == http.StatusRequestTimeout:
		return MsgTimeout
	case status == http.StatusTooManyRequests:
		return MsgRateLimited
	case status >= 500:
		return MsgServerError
	case serverMessage != "":
		return serverMessage
	default:
		return MsgNetwork
	}
}
