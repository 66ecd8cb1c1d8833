package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	// Config holds every externally supplied constant: nothing in the domain
	// layer reads the environment directly.
	Config struct {
		Debug      bool   `env:"DEBUG" envDefault:"false"`
		LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
		ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

		DB       DBConfig       `envPrefix:"DB_"`
		Storage  StorageConfig  `envPrefix:"STORAGE_"`
		Media    MediaConfig    `envPrefix:"MEDIA_"`
		TestUser TestUserConfig `envPrefix:"TEST_USER_"`

		MaxTweetLength int `env:"MAX_TWEET_LENGTH" envDefault:"5000"`
	}

	DBConfig struct {
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     string `env:"PORT" envDefault:"5432"`
		User     string `env:"USER" envDefault:"postgres"`
		Password string `env:"PASSWORD"`
		Name     string `env:"NAME" envDefault:"microblog"`
		SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	}

	// StorageConfig selects and configures the blob store backend.
	StorageConfig struct {
		Backend string `env:"BACKEND" envDefault:"disk"` // "disk" or "s3"

		MediaRoot string `env:"MEDIA_ROOT" envDefault:"./media"`

		S3Endpoint  string `env:"S3_ENDPOINT"`
		S3Region    string `env:"S3_REGION" envDefault:"auto"`
		S3AccessKey string `env:"S3_ACCESS_KEY"`
		S3SecretKey string `env:"S3_SECRET_KEY"`
		S3Bucket    string `env:"S3_BUCKET"`
	}

	MediaConfig struct {
		MaxUploadSize     int64    `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"` // 5 MB
		AllowedImageTypes []string `env:"ALLOWED_IMAGE_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/gif"`
		MaxImageDimension int      `env:"MAX_IMAGE_DIMENSION" envDefault:"1920"`
	}

	// TestUserConfig identifies the fallback user that must always exist.
	// Requests with no or unknown api key resolve to this identity.
	TestUserConfig struct {
		APIKey    string `env:"API_KEY" envDefault:"test"`
		FirstName string `env:"FIRST_NAME" envDefault:"Test"`
		Surname   string `env:"SURNAME" envDefault:"User"`
	}
)

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ImageTypeAllowed reports whether the content type is in the allow-list.
func (c *MediaConfig) ImageTypeAllowed(contentType string) bool {
	for _, t := range c.AllowedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
