package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayhub/internal/models"
	"stayhub/internal/repository"
	"stayhub/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, caller *models.User, previous, next string) (*models.User, error) {
	args := m.Called(ctx, caller, previous, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) RecoverPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) RoomsOf(ctx context.Context, id primitive.ObjectID) ([]models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, caller *models.User, id primitive.ObjectID, patch service.UserPatch) (*models.User, error) {
	args := m.Called(ctx, caller, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UploadPicture(ctx context.Context, caller *models.User, id primitive.ObjectID, fileName string, file io.Reader, size int64) (*models.User, error) {
	args := m.Called(ctx, caller, id, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeletePicture(ctx context.Context, caller *models.User, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) Publish(ctx context.Context, owner *models.User, req service.PublishRequest) (*models.Room, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Get(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) List(ctx context.Context, filter repository.RoomFilter) ([]models.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomService) ListAround(ctx context.Context, latitude, longitude float64) ([]models.Room, error) {
	args := m.Called(ctx, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomService) Update(ctx context.Context, caller *models.User, id primitive.ObjectID, patch service.RoomPatch) (*models.Room, error) {
	args := m.Called(ctx, caller, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) UploadPicture(ctx context.Context, caller *models.User, id primitive.ObjectID, fileName string, file io.Reader, size int64) (*models.Room, error) {
	args := m.Called(ctx, caller, id, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) DeletePicture(ctx context.Context, caller *models.User, id primitive.ObjectID, pictureID string) (*models.Room, error) {
	args := m.Called(ctx, caller, id, pictureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
