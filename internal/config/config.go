// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingSetting is matched by every MissingSettingError.
var ErrMissingSetting = errors.New("missing required setting")

// MissingSettingError names a site-wide setting that must be set.
type MissingSettingError struct {
	Key  string
	Path string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("setting %q is required (in %s)", e.Key, e.Path)
}

func (e *MissingSettingError) Is(target error) bool { return target == ErrMissingSetting }

// Settings holds the site-wide configuration from settings.yml.
// Unknown keys are kept in Params and handed to templates as-is.
type Settings struct {
	Title        string                 `yaml:"title"`
	Description  string                 `yaml:"description"`
	MainURL      string                 `yaml:"main_url"`
	Language     string                 `yaml:"language"`
	Introduction string                 `yaml:"introduction"`
	Footer       string                 `yaml:"footer"`
	Topbar       string                 `yaml:"topbar"`
	Params       map[string]interface{} `yaml:",inline"`
}

// Default returns the settings every site starts from before settings.yml is
// applied on top.
func Default() Settings {
	return Settings{
		Title:       "Dok",
		Description: "A website made with dok",
		Language:    "en",
		Footer:      "Made with dok",
	}
}

// LoadSettings reads path over the defaults. A missing file leaves the
// defaults untouched; the result is validated either way.
func LoadSettings(path string) (Settings, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Settings{}, fmt.Errorf("could not read settings file at %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Settings{}, fmt.Errorf("could not parse settings file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(path); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Validate checks the settings the build cannot run without.
func (s Settings) Validate(path string) error {
	required := []struct {
		key   string
		value string
	}{
		{"title", s.Title},
		{"main_url", s.MainURL},
		{"description", s.Description},
		{"language", s.Language},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingSettingError{Key: r.key, Path: path}
		}
	}
	return nil
}
