package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	defaultConfigPath = "./config.yaml"
	defaultEnvFile    = ".env"
)

// Load builds the configuration. Variables from a dotenv file (ENV_FILE,
// fallback ./.env) are added to the process environment without replacing
// ones already set. Then the YAML file at CONFIG_PATH (fallback
// ./config.yaml) is read, environment variables override it and env-default
// tags fill the rest. Only explicitly named files are required to exist.
func Load() (*Config, error) {
	return LoadSections(SectionAll)
}

// LoadSections is Load with validation limited to the given sections.
func LoadSections(sections Section) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var cfg Config
	path, explicit := lookupPath("CONFIG_PATH", defaultConfigPath)

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.ValidateSections(sections); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	path, explicit := lookupPath("ENV_FILE", defaultEnvFile)
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("config: env file %s: %w", path, err)
}

func lookupPath(key, fallback string) (string, bool) {
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	return fallback, false
}
