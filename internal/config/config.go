// Package config loads the application configuration from an optional YAML
// file overlaid with VISITAS_-prefixed environment variables. The reporting
// window cutoff and the canonical status labels are deliberately not here;
// they are named constants in the dataprocessing package.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "visitascli/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// PathsConfig contains file system locations for input and artifacts.
type PathsConfig struct {
	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/visitas.log",
		},
		Paths: PathsConfig{
			InputFile:  "visitas.xlsx",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// configPath if it exists, then environment variables. The result is
// validated before use.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to parse config file", err).
					WithContext("path", configPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, apperrors.NewConfigError("failed to read config file", err).
				WithContext("path", configPath)
		}
	}

	if err := envconfig.Process("VISITAS", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from environment", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}
