package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/models"
	"stayhub/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	UserService service.UserService
	RoomService service.RoomService
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		UserService: services.User,
		RoomService: services.Room,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

// TokenFromRequest extracts the bearer token: the Authorization header first,
// then the legacy `token` query field.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return r.URL.Query().Get("token")
}

// authenticate is the authorization gate entry: it resolves the presented
// token to an account or fails with 401 before any business logic runs.
func (h *Handlers) authenticate(r *http.Request) (*models.User, error) {
	return h.AuthService.UserByToken(r.Context(), TokenFromRequest(r))
}
