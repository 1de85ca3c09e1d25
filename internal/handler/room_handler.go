package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"stayhub/internal/repository"
	"stayhub/internal/service"
)

type PublishRoomRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Location    *struct {
		Lat *float64 `json:"lat" validate:"required"`
		Lng *float64 `json:"lng" validate:"required"`
	} `json:"location" validate:"required"`
}

func (h *Handlers) PublishRoom(w http.ResponseWriter, r *http.Request) {
	var req PublishRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	caller, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || *req.Price <= 0 {
		WriteError(w, "All fields must be completed correctly", http.StatusBadRequest)
		return
	}

	room, err := h.RoomService.Publish(r.Context(), caller, service.PublishRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Latitude:    *req.Location.Lat,
		Longitude:   *req.Location.Lng,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, room, http.StatusOK)
}

// roomFilterFromQuery reads the /rooms parameters. Values that do not parse
// are ignored, matching the documented endpoint behavior.
func roomFilterFromQuery(r *http.Request) repository.RoomFilter {
	query := r.URL.Query()
	filter := repository.RoomFilter{Title: query.Get("title")}

	if raw := query.Get("priceMin"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceMin = &value
		}
	}
	if raw := query.Get("priceMax"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceMax = &value
		}
	}

	switch query.Get("sort") {
	case "price-asc", "price-desc", "date-asc", "date-desc":
		filter.Sort = query.Get("sort")
	}

	if raw := query.Get("page"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filter.Page = &value
		}
	}

	return filter
}

func (h *Handlers) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.RoomService.List(r.Context(), roomFilterFromQuery(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, rooms, http.StatusOK)
}

func (h *Handlers) GetRoomsAround(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rawLat := query.Get("latitude")
	rawLng := query.Get("longitude")

	if rawLat == "" || rawLng == "" {
		WriteError(w, "Missing location", http.StatusBadRequest)
		return
	}

	latitude, errLat := strconv.ParseFloat(rawLat, 64)
	longitude, errLng := strconv.ParseFloat(rawLng, 64)
	if errLat != nil || errLng != nil || latitude <= 0 || longitude <= 0 {
		WriteError(w, "Wrong latitude/longitude", http.StatusBadRequest)
		return
	}

	rooms, err := h.RoomService.ListAround(r.Context(), latitude, longitude)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, rooms, http.StatusOK)
}

func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		WriteError(w, "Wrong id", http.StatusBadRequest)
		return
	}

	room, err := h.RoomService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, room, http.StatusOK)
}

type UpdateRoomRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	Location    []float64 `json:"location"`
}

func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	if req.Title == "" && req.Description == "" && req.Price == nil && req.Location == nil {
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

	room, err := h.RoomService.Update(r.Context(), caller, id, service.RoomPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, room, http.StatusOK)
}

func (h *Handlers) UploadRoomPicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Missing file", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("pictures")
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

	room, err := h.RoomService.UploadPicture(r.Context(), caller, id, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, room, http.StatusOK)
}

func (h *Handlers) DeleteRoomPicture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PictureID string `json:"picture_id" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Missing picture_id", http.StatusBadRequest)
		return
	}

	if req.PictureID == "" {
		WriteError(w, "Missing picture_id", http.StatusBadRequest)
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

	room, err := h.RoomService.DeletePicture(r.Context(), caller, id, req.PictureID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, room, http.StatusOK)
}

func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
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

	if err := h.RoomService.Delete(r.Context(), caller, id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Room deleted"}, http.StatusOK)
}
