package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Mongo struct {
	URI      string
	Database string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type SendGrid struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type Config struct {
	ServerPort    int
	Mongo         Mongo
	MinIO         MinIO
	SendGrid      SendGrid
	MaxUploadSize int64
	ResetLinkBase string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func LoadMongo() Mongo {
	return Mongo{
		URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGODB_DATABASE", "stayhub"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "pictures"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadSendGrid() SendGrid {
	return SendGrid{
		APIKey:    getEnv("SENDGRID_API_KEY", ""),
		FromEmail: getEnv("SENDGRID_FROM_EMAIL", "postmaster@stayhub.local"),
		FromName:  getEnv("SENDGRID_FROM_NAME", "Stayhub API"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		Mongo:         LoadMongo(),
		MinIO:         LoadMinIO(),
		SendGrid:      LoadSendGrid(),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		ResetLinkBase: getEnv("RESET_LINK_BASE", "https://stayhub.local"),
	}
}
