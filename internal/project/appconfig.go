package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// DefaultAppConfigPath returns the default file path for the application
// config file, ~/.trailerpack/config.json.
func DefaultAppConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trailerpack", "config.json"), nil
}

// SaveAppConfig writes the application config to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveAppConfig(path string, cfg model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads the application config from the specified JSON file.
// If the file does not exist, it returns the default config and saves it.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := model.DefaultAppConfig()
			if saveErr := SaveAppConfig(path, cfg); saveErr != nil {
				return cfg, saveErr
			}
			return cfg, nil
		}
		return model.AppConfig{}, err
	}
	var cfg model.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.AppConfig{}, err
	}
	return cfg, nil
}

// AddRecentPlan prepends a plan path to the recent list, dropping duplicates
// and keeping at most 10 entries.
func AddRecentPlan(cfg *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range cfg.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	cfg.RecentPlans = recent
}
