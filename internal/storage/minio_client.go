package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"stayhub/internal/config"
	"stayhub/internal/models"
)

// Storage is the media attachment gateway. Upload returns the external id
// used later for deletion plus a stable public URL.
type Storage interface {
	UploadPicture(ctx context.Context, folder, fileName string, file io.Reader, size int64) (models.Picture, error)
	DeletePicture(ctx context.Context, publicID string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create MinIO client: %w", err)
	}

	m := &MinIOClient{client: client, cfg: cfg.MinIO}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("could not check bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("could not create bucket: %w", err)
		}
	}

	return m, nil
}

func (m *MinIOClient) UploadPicture(ctx context.Context, folder, fileName string, file io.Reader, size int64) (models.Picture, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return models.Picture{}, fmt.Errorf("could not upload picture: %w", err)
	}

	return models.Picture{ID: objectName, URL: m.publicURL(objectName)}, nil
}

func (m *MinIOClient) DeletePicture(ctx context.Context, publicID string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("could not delete picture: %w", err)
	}
	return nil
}

func (m *MinIOClient) publicURL(objectName string) string {
	scheme := "http"
	if m.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.Endpoint, m.cfg.BucketName, objectName)
}
