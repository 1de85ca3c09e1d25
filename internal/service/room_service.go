package service

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayhub/internal/models"
	"stayhub/internal/repository"
	"stayhub/internal/storage"
)

const (
	// MaxRoomPictures is the attachment limit per room.
	MaxRoomPictures = 5
	// RandomSampleSize is how many rooms the unfiltered /rooms endpoint
	// returns when the collection is larger than that.
	RandomSampleSize = 15
)

type PublishRequest struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
}

// RoomPatch carries the optional fields of a room update. Nil/empty means the
// field was not supplied.
type RoomPatch struct {
	Title       string
	Description string
	Price       *float64
	Location    []float64
}

func (p RoomPatch) Empty() bool {
	return p.Title == "" && p.Description == "" && p.Price == nil && p.Location == nil
}

type RoomService interface {
	Publish(ctx context.Context, owner *models.User, req PublishRequest) (*models.Room, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Room, error)
	List(ctx context.Context, filter repository.RoomFilter) ([]models.Room, error)
	ListAround(ctx context.Context, latitude, longitude float64) ([]models.Room, error)
	Update(ctx context.Context, caller *models.User, id primitive.ObjectID, patch RoomPatch) (*models.Room, error)
	UploadPicture(ctx context.Context, caller *models.User, id primitive.ObjectID, fileName string, file io.Reader, size int64) (*models.Room, error)
	DeletePicture(ctx context.Context, caller *models.User, id primitive.ObjectID, pictureID string) (*models.Room, error)
	Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error
}

type roomService struct {
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewRoomService(roomRepo repository.RoomRepository, userRepo repository.UserRepository, storage storage.Storage) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *roomService) Publish(ctx context.Context, owner *models.User, req PublishRequest) (*models.Room, error) {
	room := &models.Room{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    []float64{req.Latitude, req.Longitude},
		UserID:      owner.ID,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	if err := s.userRepo.PushRoom(ctx, owner.ID, room.ID); err != nil {
		return nil, err
	}

	room.User = owner.Public()
	return room, nil
}

func (s *roomService) Get(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, NotFound("Room not found")
		}
		return nil, err
	}

	s.populateOwner(ctx, room)
	return room, nil
}

// List answers the /rooms endpoint. With no parameters at all it returns up
// to RandomSampleSize rooms sampled without replacement; otherwise it runs
// the filtered query.
func (s *roomService) List(ctx context.Context, filter repository.RoomFilter) ([]models.Room, error) {
	if filter.Empty() {
		rooms, err := s.roomRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(rooms) > RandomSampleSize {
			rooms = sampleRooms(rooms, RandomSampleSize)
		}
		return rooms, nil
	}

	rooms, err := s.roomRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.populateOwners(ctx, rooms)
	return rooms, nil
}

func (s *roomService) ListAround(ctx context.Context, latitude, longitude float64) ([]models.Room, error) {
	return s.roomRepo.FindNear(ctx, latitude, longitude)
}

func (s *roomService) Update(ctx context.Context, caller *models.User, id primitive.ObjectID, patch RoomPatch) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return nil, BadRequest("Missing parameters")
	}

	set := bson.M{}
	if patch.Title != "" {
		set["title"] = patch.Title
	}
	if patch.Description != "" {
		set["description"] = patch.Description
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, BadRequest("All fields must be completed correctly")
		}
		set["price"] = *patch.Price
	}
	if patch.Location != nil {
		if len(patch.Location) != 2 {
			return nil, BadRequest("Wrong parameters lat/lng")
		}
		set["location"] = patch.Location
	}

	if err := s.roomRepo.Update(ctx, room.ID, set); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *roomService) UploadPicture(ctx context.Context, caller *models.User, id primitive.ObjectID, fileName string, file io.Reader, size int64) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if len(room.Pictures) >= MaxRoomPictures {
		return nil, BadRequest("Can't add more 5 pictures")
	}

	picture, err := s.storage.UploadPicture(ctx, "rooms", fileName, file, size)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.PushPicture(ctx, room.ID, picture); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *roomService) DeletePicture(ctx context.Context, caller *models.User, id primitive.ObjectID, pictureID string) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	found := false
	for _, picture := range room.Pictures {
		if picture.ID == pictureID {
			found = true
			break
		}
	}
	if !found {
		return nil, NotFound("Picture not found")
	}

	if err := s.storage.DeletePicture(ctx, pictureID); err != nil {
		log.Printf("could not remove picture %s: %v", pictureID, err)
	}

	if err := s.roomRepo.PullPicture(ctx, room.ID, pictureID); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *roomService) Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error {
	room, err := s.ownedRoom(ctx, caller, id)
	if err != nil {
		return err
	}

	for _, picture := range room.Pictures {
		if err := s.storage.DeletePicture(ctx, picture.ID); err != nil {
			log.Printf("could not remove picture %s: %v", picture.ID, err)
		}
	}

	if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
		return err
	}

	return s.userRepo.PullRoom(ctx, room.UserID, room.ID)
}

// ownedRoom loads the room and checks that the caller's token matches the
// owner's stored token.
func (s *roomService) ownedRoom(ctx context.Context, caller *models.User, id primitive.ObjectID) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, NotFound("Room not found")
		}
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, room.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, Unauthorized("User unauthorized")
		}
		return nil, err
	}

	if owner.Token != caller.Token {
		return nil, Unauthorized("User unauthorized")
	}

	return room, nil
}

func (s *roomService) populateOwner(ctx context.Context, room *models.Room) {
	owner, err := s.userRepo.GetByID(ctx, room.UserID)
	if err != nil {
		return
	}
	room.User = owner.Public()
}

func (s *roomService) populateOwners(ctx context.Context, rooms []models.Room) {
	cache := map[primitive.ObjectID]*models.PublicUser{}

	for i := range rooms {
		if public, ok := cache[rooms[i].UserID]; ok {
			rooms[i].User = public
			continue
		}

		owner, err := s.userRepo.GetByID(ctx, rooms[i].UserID)
		if err != nil {
			continue
		}
		cache[rooms[i].UserID] = owner.Public()
		rooms[i].User = cache[rooms[i].UserID]
	}
}

// sampleRooms picks n rooms uniformly without replacement.
func sampleRooms(rooms []models.Room, n int) []models.Room {
	picked := make([]models.Room, 0, n)
	for _, i := range rand.Perm(len(rooms))[:n] {
		picked = append(picked, rooms[i])
	}
	return picked
}
