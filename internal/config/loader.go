package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
//
// The file is path when given, else CONFIG_PATH, else ./config.yaml. A missing
// file is an error only when it was named explicitly; otherwise configuration
// comes from ENV and defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := read(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// ProviderConfig is the subset of configuration a headless client needs:
// no secrets for tokens or storage are required.
type ProviderConfig struct {
	Gemini GeminiConfig `yaml:"gemini"`
	Log    LogConfig    `yaml:"log"`
}

// LoadProvider reads only the gemini and log sections, resolving path like Load.
func LoadProvider(path string) (*ProviderConfig, error) {
	var cfg ProviderConfig
	if err := read(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Gemini.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: gemini: %w", err)
	}

	return &cfg, nil
}

func read(path string, dst any) error {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, dst); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(dst); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
	}
	return nil
}

// Usage returns the environment variable reference for the CLI help.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
