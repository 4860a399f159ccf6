package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
	AccessTTL    time.Duration
}

type ExternalServicesConfig struct {
	OpenMeteoURL string
	NominatimURL string
}

type WeatherConfig struct {
	// RefreshSpec is a cron expression for the daily refresh of all plots.
	RefreshSpec string
	// CacheMaxEntries bounds the dashboard day cache; on overflow every
	// entry not dated today is pruned.
	CacheMaxEntries int
}

type Config struct {
	Environment      string
	HTTP             HTTPConfig
	DB               DBConfig
	Auth             AuthConfig
	ExternalServices ExternalServicesConfig
	Weather          WeatherConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			AccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		},
		ExternalServices: ExternalServicesConfig{
			OpenMeteoURL: v.GetString("OPEN_METEO_URL"),
			NominatimURL: v.GetString("NOMINATIM_URL"),
		},
		Weather: WeatherConfig{
			RefreshSpec:     v.GetString("WEATHER_REFRESH_SPEC"),
			CacheMaxEntries: v.GetInt("WEATHER_CACHE_MAX_ENTRIES"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Auth.AccessTTL == 0 {
		cfg.Auth.AccessTTL = 30 * time.Minute
	}
	if cfg.ExternalServices.OpenMeteoURL == "" {
		cfg.ExternalServices.OpenMeteoURL = "https://api.open-meteo.com/v1/forecast"
	}
	if cfg.ExternalServices.NominatimURL == "" {
		cfg.ExternalServices.NominatimURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Weather.RefreshSpec == "" {
		cfg.Weather.RefreshSpec = "0 5 * * *"
	}
	if cfg.Weather.CacheMaxEntries == 0 {
		cfg.Weather.CacheMaxEntries = 256
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
