// Package docconfig loads presentation settings for rendered billing
// statements from the environment, optionally overridden by a YAML file.
package docconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines statement document branding.
type Config struct {
	Title        string `yaml:"title"`
	LandlordName string `yaml:"landlord_name"`
	FooterNote   string `yaml:"footer_note"`
	Currency     string `yaml:"currency"`
}

// Load builds the config from env defaults, then applies the YAML file named
// by DOC_CONFIG when set.
func Load() (Config, error) {
	cfg := Config{
		Title:        getenvDefault("DOC_TITLE", "Nebenkostenabrechnung"),
		LandlordName: os.Getenv("DOC_LANDLORD_NAME"),
		FooterNote:   os.Getenv("DOC_FOOTER_NOTE"),
		Currency:     getenvDefault("CURRENCY", "EUR"),
	}

	if path := os.Getenv("DOC_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Title == "" {
		cfg.Title = "Nebenkostenabrechnung"
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
