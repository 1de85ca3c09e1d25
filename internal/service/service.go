package service

import (
	"stayhub/internal/config"
	"stayhub/internal/mailer"
	"stayhub/internal/repository"
	"stayhub/internal/storage"
)

type Service struct {
	Auth AuthService
	User UserService
	Room RoomService
}

func NewService(repo *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth: NewAuthService(repo.User, mail, cfg),
		User: NewUserService(repo.User, repo.Room, storage),
		Room: NewRoomService(repo.Room, repo.User, storage),
	}
}
