// Package config loads the service configuration document.
package config

import (
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Config is the full scenefold service configuration.
type Config struct {
	Listen         string             `yaml:"listen" validate:"required"`
	StorageDir     string             `yaml:"storage_dir" validate:"required"`
	FontServiceURL string             `yaml:"font_service_url,omitempty" validate:"omitempty,url"`
	ImageService   ImageServiceConfig `yaml:"image_service,omitempty"`
	Log            LogConfig          `yaml:"log,omitempty"`
}

// ImageServiceConfig points at the generative-image endpoint.
type ImageServiceConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level         string `yaml:"level,omitempty"`
	HumanReadable bool   `yaml:"human_readable,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Listen:         "127.0.0.1:8420",
		StorageDir:     "scenes",
		FontServiceURL: "https://fonts.googleapis.com",
		Log:            LogConfig{Level: "info"},
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load reads and validates a YAML configuration file. Absent optional
// fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scenefolderrors.NewFileSystemError(path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, scenefolderrors.NewValidationError("config", "malformed configuration", err)
	}

	if err := validatorInstance().Struct(&cfg); err != nil {
		return nil, scenefolderrors.NewValidationError("config", err.Error(), err)
	}
	return &cfg, nil
}
