package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"stayhub/internal/service"
)

// ErrorResponse is the error envelope every endpoint answers with.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps business-rule violations to their status code;
// anything else (datastore, media host) surfaces as a generic 400 carrying
// the underlying message.
func WriteServiceError(w http.ResponseWriter, err error) {
	var statusErr *service.StatusError
	if errors.As(err, &statusErr) {
		WriteError(w, statusErr.Message, statusErr.Code)
		return
	}
	WriteError(w, err.Error(), http.StatusBadRequest)
}
