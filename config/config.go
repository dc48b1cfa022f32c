package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Weather  WeatherConfig  `yaml:"weather"`
	Settings SettingsConfig `yaml:"settings"`
	Admin    AdminConfig    `yaml:"admin"`
	Light    LightConfig    `yaml:"light"`
	Log      LogConfig      `yaml:"log"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME" default:"weather-display"`
	Version string `yaml:"version" envconfig:"APP_VERSION" default:"1.0.0"`
	Env     string `yaml:"env" envconfig:"APP_ENV" default:"development"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"10"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"10"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT" default:"120"`
}

// WeatherConfig describes the Open-Meteo endpoints and the default city shown
// before the first search.
type WeatherConfig struct {
	ForecastURL     string  `yaml:"forecast_url" envconfig:"WEATHER_FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast"`
	GeocodingURL    string  `yaml:"geocoding_url" envconfig:"WEATHER_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	Timeout         int     `yaml:"timeout" envconfig:"WEATHER_TIMEOUT" default:"10"`
	RatePerSecond   float64 `yaml:"rate_per_second" envconfig:"WEATHER_RATE_PER_SECOND" default:"5"`
	Burst           int     `yaml:"burst" envconfig:"WEATHER_BURST" default:"10"`
	GeocodeCache    int     `yaml:"geocode_cache" envconfig:"WEATHER_GEOCODE_CACHE" default:"256"`
	DefaultCity     string  `yaml:"default_city" envconfig:"WEATHER_DEFAULT_CITY" default:"Київ"`
	DefaultLat      float64 `yaml:"default_lat" envconfig:"WEATHER_DEFAULT_LAT" default:"50.4501"`
	DefaultLon      float64 `yaml:"default_lon" envconfig:"WEATHER_DEFAULT_LON" default:"30.5234"`
	RefreshInterval int     `yaml:"refresh_interval" envconfig:"WEATHER_REFRESH_INTERVAL" default:"15"`
}

// SettingsConfig selects the backend for durable flags: memory, file or postgres.
type SettingsConfig struct {
	Backend     string `yaml:"backend" envconfig:"SETTINGS_BACKEND" default:"file"`
	FilePath    string `yaml:"file_path" envconfig:"SETTINGS_FILE_PATH" default:"data/settings.yaml"`
	DatabaseURL string `yaml:"database_url" envconfig:"DATABASE_URL"`
}

type AdminConfig struct {
	KafkaBrokers []string `yaml:"kafka_brokers" envconfig:"ADMIN_KAFKA_BROKERS"`
	KafkaTopic   string   `yaml:"kafka_topic" envconfig:"ADMIN_KAFKA_TOPIC" default:"push-notifications"`
}

type LightConfig struct {
	FrameURL string `yaml:"frame_url" envconfig:"LIGHT_FRAME_URL" default:"https://light-in-app.web.app/"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT" default:"json"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"SENTRY_DSN"`
	Debug bool   `yaml:"debug" envconfig:"SENTRY_DEBUG" default:"false"`
}

// ConfigProvider loads and validates the application configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads a YAML file and overlays environment variables.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	var cnf Config

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := p.loadFromFile(&cnf); err != nil {
		return nil, err
	}

	// Environment wins over the file, so apply it once more on top.
	if err := p.overrideFromEnv(&cnf); err != nil {
		return nil, err
	}

	return &cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) overrideFromEnv(cnf *Config) error {
	fromEnv := Config{}
	if err := envconfig.Process("", &fromEnv); err != nil {
		return fmt.Errorf("error environment variable parsing: %w", err)
	}

	for key, apply := range envOverrides(cnf, &fromEnv) {
		if _, ok := os.LookupEnv(key); ok {
			apply()
		}
	}

	return nil
}

func envOverrides(dst, src *Config) map[string]func() {
	return map[string]func(){
		"APP_NAME":                 func() { dst.App.Name = src.App.Name },
		"APP_VERSION":              func() { dst.App.Version = src.App.Version },
		"APP_ENV":                  func() { dst.App.Env = src.App.Env },
		"SERVER_PORT":              func() { dst.Server.Port = src.Server.Port },
		"SERVER_READ_TIMEOUT":      func() { dst.Server.ReadTimeout = src.Server.ReadTimeout },
		"SERVER_WRITE_TIMEOUT":     func() { dst.Server.WriteTimeout = src.Server.WriteTimeout },
		"SERVER_IDLE_TIMEOUT":      func() { dst.Server.IdleTimeout = src.Server.IdleTimeout },
		"WEATHER_FORECAST_URL":     func() { dst.Weather.ForecastURL = src.Weather.ForecastURL },
		"WEATHER_GEOCODING_URL":    func() { dst.Weather.GeocodingURL = src.Weather.GeocodingURL },
		"WEATHER_TIMEOUT":          func() { dst.Weather.Timeout = src.Weather.Timeout },
		"WEATHER_RATE_PER_SECOND":  func() { dst.Weather.RatePerSecond = src.Weather.RatePerSecond },
		"WEATHER_BURST":            func() { dst.Weather.Burst = src.Weather.Burst },
		"WEATHER_GEOCODE_CACHE":    func() { dst.Weather.GeocodeCache = src.Weather.GeocodeCache },
		"WEATHER_DEFAULT_CITY":     func() { dst.Weather.DefaultCity = src.Weather.DefaultCity },
		"WEATHER_DEFAULT_LAT":      func() { dst.Weather.DefaultLat = src.Weather.DefaultLat },
		"WEATHER_DEFAULT_LON":      func() { dst.Weather.DefaultLon = src.Weather.DefaultLon },
		"WEATHER_REFRESH_INTERVAL": func() { dst.Weather.RefreshInterval = src.Weather.RefreshInterval },
		"SETTINGS_BACKEND":         func() { dst.Settings.Backend = src.Settings.Backend },
		"SETTINGS_FILE_PATH":       func() { dst.Settings.FilePath = src.Settings.FilePath },
		"DATABASE_URL":             func() { dst.Settings.DatabaseURL = src.Settings.DatabaseURL },
		"ADMIN_KAFKA_BROKERS":      func() { dst.Admin.KafkaBrokers = src.Admin.KafkaBrokers },
		"ADMIN_KAFKA_TOPIC":        func() { dst.Admin.KafkaTopic = src.Admin.KafkaTopic },
		"LIGHT_FRAME_URL":          func() { dst.Light.FrameURL = src.Light.FrameURL },
		"LOG_LEVEL":                func() { dst.Log.Level = src.Log.Level },
		"LOG_FORMAT":               func() { dst.Log.Format = src.Log.Format },
		"SENTRY_DSN":               func() { dst.Sentry.DSN = src.Sentry.DSN },
		"SENTRY_DEBUG":             func() { dst.Sentry.Debug = src.Sentry.Debug },
	}
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var problems []string

	if strings.TrimSpace(cnf.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(cnf.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if cnf.Weather.ForecastURL == "" || cnf.Weather.GeocodingURL == "" {
		problems = append(problems, "weather endpoints are required")
	}
	if cnf.Weather.Timeout <= 0 {
		problems = append(problems, "weather.timeout must be positive")
	}
	if cnf.Weather.RatePerSecond <= 0 || cnf.Weather.Burst <= 0 {
		problems = append(problems, "weather rate limit must be positive")
	}

	switch cnf.Settings.Backend {
	case "memory", "file":
	case "postgres":
		if cnf.Settings.DatabaseURL == "" {
			problems = append(problems, "settings.database_url is required for postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown settings backend %q", cnf.Settings.Backend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}

	return nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(defaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
