package service

import "net/http"

// StatusError is a business-rule violation carrying the HTTP status the
// handlers should answer with. Anything else that bubbles up is reported as a
// generic 400 with the underlying message.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func BadRequest(message string) error {
	return &StatusError{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) error {
	return &StatusError{Code: http.StatusUnauthorized, Message: message}
}

func NotFound(message string) error {
	return &StatusError{Code: http.StatusNotFound, Message: message}
}
