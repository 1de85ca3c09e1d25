package service

import (
	"context"
	"errors"
	"io"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayhub/internal/models"
	"stayhub/internal/repository"
	"stayhub/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+@[a-zA-Z0-9]+\.[a-zA-Z]+$`)

// UserPatch carries the optional profile fields of an update request. Empty
// string means the field was not supplied.
type UserPatch struct {
	Email       string
	Username    string
	Name        string
	Description string
}

func (p UserPatch) Empty() bool {
	return p.Email == "" && p.Username == "" && p.Name == "" && p.Description == ""
}

type UserService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	RoomsOf(ctx context.Context, id primitive.ObjectID) ([]models.Room, error)
	Update(ctx context.Context, caller *models.User, id primitive.ObjectID, patch UserPatch) (*models.User, error)
	UploadPicture(ctx context.Context, caller *models.User, id primitive.ObjectID, fileName string, file io.Reader, size int64) (*models.User, error)
	DeletePicture(ctx context.Context, caller *models.User, id primitive.ObjectID) (*models.User, error)
	Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error
}

type userService struct {
	userRepo repository.UserRepository
	roomRepo repository.RoomRepository
	storage  storage.Storage
}

func NewUserService(userRepo repository.UserRepository, roomRepo repository.RoomRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		roomRepo: roomRepo,
		storage:  storage,
	}
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) RoomsOf(ctx context.Context, id primitive.ObjectID) ([]models.Room, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.FindByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, NotFound("This user has no room")
	}

	return rooms, nil
}

// ownedBy rejects callers whose token does not match the target account's.
func ownedBy(caller, target *models.User) error {
	if target.Token != caller.Token {
		return Unauthorized("User unauthorized")
	}
	return nil
}

func (s *userService) Update(ctx context.Context, caller *models.User, id primitive.ObjectID, patch UserPatch) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownedBy(caller, user); err != nil {
		return nil, err
	}

	set := bson.M{}

	if patch.Email != "" {
		if !emailPattern.MatchString(patch.Email) {
			return nil, BadRequest("Email: incorrect format")
		}
		if _, err := s.userRepo.GetByEmail(ctx, patch.Email); err == nil {
			return nil, BadRequest("Email already used")
		} else if !errors.Is(err, repository.ErrNoDocument) {
			return nil, err
		}
		set["email"] = patch.Email
	}

	if patch.Username != "" {
		if _, err := s.userRepo.GetByUsername(ctx, patch.Username); err == nil {
			return nil, BadRequest("Username already used")
		} else if !errors.Is(err, repository.ErrNoDocument) {
			return nil, err
		}
		set["account.username"] = patch.Username
	}

	if patch.Name != "" {
		set["account.name"] = patch.Name
	}
	if patch.Description != "" {
		set["account.description"] = patch.Description
	}

	if len(set) == 0 {
		return nil, BadRequest("Missing parameters")
	}

	if err := s.userRepo.Update(ctx, id, set); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *userService) UploadPicture(ctx context.Context, caller *models.User, id primitive.ObjectID, fileName string, file io.Reader, size int64) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownedBy(caller, user); err != nil {
		return nil, err
	}

	// One picture per account: replace means delete the old asset first.
	if user.Account.Picture != nil {
		if err := s.storage.DeletePicture(ctx, user.Account.Picture.ID); err != nil {
			log.Printf("could not remove replaced picture %s: %v", user.Account.Picture.ID, err)
		}
	}

	picture, err := s.storage.UploadPicture(ctx, "users", fileName, file, size)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, id, bson.M{"account.picture": picture}); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *userService) DeletePicture(ctx context.Context, caller *models.User, id primitive.ObjectID) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownedBy(caller, user); err != nil {
		return nil, err
	}

	if user.Account.Picture == nil {
		return nil, NotFound("Picture not found")
	}

	if err := s.storage.DeletePicture(ctx, user.Account.Picture.ID); err != nil {
		log.Printf("could not remove picture %s: %v", user.Account.Picture.ID, err)
	}

	if err := s.userRepo.Update(ctx, id, bson.M{"account.picture": nil}); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the account and cascades over its rooms: media-host cleanup
// first, then the room documents, then the account itself. Media failures are
// logged and skipped so the document graph never ends up half-deleted.
func (s *userService) Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := ownedBy(caller, user); err != nil {
		return err
	}

	rooms, err := s.roomRepo.FindByUser(ctx, id)
	if err != nil {
		return err
	}

	for _, room := range rooms {
		for _, picture := range room.Pictures {
			if err := s.storage.DeletePicture(ctx, picture.ID); err != nil {
				log.Printf("could not remove picture %s: %v", picture.ID, err)
			}
		}
		if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
			return err
		}
	}

	if user.Account.Picture != nil {
		if err := s.storage.DeletePicture(ctx, user.Account.Picture.ID); err != nil {
			log.Printf("could not remove picture %s: %v", user.Account.Picture.ID, err)
		}
	}

	return s.userRepo.Delete(ctx, id)
}
