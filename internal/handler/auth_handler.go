package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"stayhub/internal/models"
	"stayhub/internal/service"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+@[a-zA-Z0-9]+\.[a-zA-Z]+$`)

const minPasswordLength = 5

type SignUpRequest struct {
	Email       string `json:"email" validate:"required"`
	Username    string `json:"username" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// TokenResponse is the sign-up/log-in answer: the session token plus the
// public account view.
type TokenResponse struct {
	Token   string         `json:"token"`
	Account models.Account `json:"account"`
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Username == "" || req.Name == "" || req.Description == "" || req.Password == "" {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		WriteError(w, "All fields must be completed correctly", http.StatusBadRequest)
		return
	}

	if !emailPattern.MatchString(req.Email) {
		WriteError(w, "Email: incorrect format", http.StatusBadRequest)
		return
	}

	if len(req.Password) < minPasswordLength {
		WriteError(w, "Password must contain at least 5 characters", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Email:       req.Email,
		Username:    req.Username,
		Name:        req.Name,
		Description: req.Description,
		Password:    req.Password,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, TokenResponse{Token: user.Token, Account: user.Account}, http.StatusOK)
}

func (h *Handlers) LogIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, TokenResponse{Token: user.Token, Account: user.Account}, http.StatusOK)
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PreviousPassword string `json:"previousPassword" validate:"required"`
		NewPassword      string `json:"newPassword" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if req.PreviousPassword == "" || req.NewPassword == "" {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	caller, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if len(req.NewPassword) < minPasswordLength {
		WriteError(w, "Password must contain at least 5 characters", http.StatusBadRequest)
		return
	}

	// Token is rotated together with the salt; the client must switch to the
	// returned token.
	updated, err := h.AuthService.UpdatePassword(r.Context(), caller, req.PreviousPassword, req.NewPassword)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{
		"message": "Password successfully modified",
		"token":   updated.Token,
	}, http.StatusOK)
}

func (h *Handlers) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing email", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		WriteError(w, "Missing email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.RecoverPassword(r.Context(), req.Email); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "A link has been sent to the user"}, http.StatusOK)
}
