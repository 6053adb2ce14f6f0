package datasource

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIKey   = "XXXXXXXXXXXXXXXXXXXXX"
	DefaultLocation = "Berlin"
	DefaultUnits    = "metric"
	DefaultBaseURL  = "http://api.openweathermap.org/data/2.5"
)

// Config represents the application configuration. It is loaded once at
// startup and must not be modified afterwards.
type Config struct {
	APIKey          string
	DefaultLocation string
	Units           string
	BaseURL         string
}

// fileConfig mirrors the layout of the skill's config file
type fileConfig struct {
	Secret struct {
		OpenWeatherMapAPIKey string `json:"openweathermap_api_key"`
		DefaultCity          string `json:"default_city"`
	} `json:"secret"`

	Global struct {
		Units   string `json:"units"`
		BaseURL string `json:"base_url"`
	} `json:"global"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		APIKey:          DefaultAPIKey,
		DefaultLocation: DefaultLocation,
		Units:           DefaultUnits,
		BaseURL:         DefaultBaseURL,
	}
}

// LoadConfig loads configuration from a JSON file. Keys missing from the file
// keep their defaults. A missing file yields the default configuration.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var fc fileConfig
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&fc); err != nil {
		return nil, err
	}

	config.APIKey = firstNonEmpty(fc.Secret.OpenWeatherMapAPIKey, config.APIKey)
	config.DefaultLocation = firstNonEmpty(fc.Secret.DefaultCity, config.DefaultLocation)
	config.Units = firstNonEmpty(fc.Global.Units, config.Units)
	config.BaseURL = firstNonEmpty(fc.Global.BaseURL, config.BaseURL)

	return config, nil
}

// LoadEnv loads variables from a .env file into the process environment.
// Variables that are already set are not overridden.
func LoadEnv(filename string) error {
	return godotenv.Load(filename)
}

// ApplyEnv overrides configuration values with environment variables
func (c *Config) ApplyEnv() {
	c.APIKey = getEnv("OPENWEATHERMAP_API_KEY", c.APIKey)
	c.DefaultLocation = getEnv("WEATHER_DEFAULT_CITY", c.DefaultLocation)
	c.Units = getEnv("WEATHER_UNITS", c.Units)
	c.BaseURL = getEnv("OPENWEATHERMAP_BASE_URL", c.BaseURL)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
