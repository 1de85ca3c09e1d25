package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayhub/internal/models"
	"stayhub/internal/service"
)

// PublicUserResponse is the unauthenticated account view: no email.
type PublicUserResponse struct {
	ID      primitive.ObjectID   `json:"id"`
	Account models.Account       `json:"account"`
	Rooms   []primitive.ObjectID `json:"rooms"`
}

// UserResponse is the owner's view returned after mutations.
type UserResponse struct {
	ID      primitive.ObjectID   `json:"id"`
	Email   string               `json:"email"`
	Account models.Account       `json:"account"`
	Rooms   []primitive.ObjectID `json:"rooms"`
}

func ownerView(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Account: user.Account, Rooms: user.Rooms}
}

// objectID validates the {id} path variable against the id format.
func objectID(r *http.Request) (primitive.ObjectID, bool) {
	idParam := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PublicUserResponse{ID: user.ID, Account: user.Account, Rooms: user.Rooms}, http.StatusOK)
}

func (h *Handlers) GetUserRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	rooms, err := h.UserService.RoomsOf(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, rooms, http.StatusOK)
}

type UpdateUserRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if req.Email == "" && req.Username == "" && req.Name == "" && req.Description == "" {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	caller, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	user, err := h.UserService.Update(r.Context(), caller, id, service.UserPatch{
		Email:       req.Email,
		Username:    req.Username,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, ownerView(user), http.StatusOK)
}

func (h *Handlers) UploadUserPicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Missing file", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		WriteError(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	caller, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	user, err := h.UserService.UploadPicture(r.Context(), caller, id, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, ownerView(user), http.StatusOK)
}

func (h *Handlers) DeleteUserPicture(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	caller, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	user, err := h.UserService.DeletePicture(r.Context(), caller, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, ownerView(user), http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	caller, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.UserService.Delete(r.Context(), caller, id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "User deleted"}, http.StatusOK)
}
