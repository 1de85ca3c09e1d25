package app

import (
	"log"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/mailer"
	"stayhub/internal/repository"
	"stayhub/internal/service"
	"stayhub/internal/storage"
)

// App opens the external handles (Mongo, MinIO) and wires the layer graph.
// Lifecycle of the returned DB belongs to the caller.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Could not initialize MinIO: %v", err)
	}

	mail := mailer.NewSendGridMailer(cfg)

	repo := repository.NewRepository(db)
	services := service.NewService(repo, cfg, minioClient, mail)

	return db, repo, services
}
