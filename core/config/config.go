package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"group-planner/core/logger"
)

type (
	// Config holds all runtime configuration, loaded once at startup
	Config struct {
		Server     ServerConfig
		Database   DatabaseConfig
		Redis      RedisConfig
		JWT        JWTConfig
		AWS        AWSConfig
		Geo        GeoConfig
		GoogleAuth GoogleAuthConfig
	}

	ServerConfig struct {
		Host     string
		Port     int
		LogLevel string
	}

	DatabaseConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	JWTConfig struct {
		Secret string
	}

	AWSConfig struct {
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		ExportBucket    string
	}

	// GeoConfig configures the external geocoding and place search providers
	GeoConfig struct {
		NominatimBaseURL string
		PhotonBaseURL    string
		UserAgent        string
		// RequestsPerSec throttles all outbound calls to the shared providers
		RequestsPerSec float64
	}

	GoogleAuthConfig struct {
		ClientID     string
		ClientSecret string
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and the environment into the config singleton
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("Config:Load", "note", ".env file not found, using environment only")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "group_planner")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AWS_REGION", "ap-southeast-1")
	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("PHOTON_BASE_URL", "https://photon.komoot.io")
	v.SetDefault("GEO_USER_AGENT", "GroupPlanner/1.0 (contact@groupplanner.vn)")
	v.SetDefault("GEO_REQUESTS_PER_SEC", 1.0)

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("SERVER_HOST"),
			Port:     v.GetInt("SERVER_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		AWS: AWSConfig{
			Region:          v.GetString("AWS_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			ExportBucket:    v.GetString("AWS_EXPORT_BUCKET"),
		},
		Geo: GeoConfig{
			NominatimBaseURL: v.GetString("NOMINATIM_BASE_URL"),
			PhotonBaseURL:    v.GetString("PHOTON_BASE_URL"),
			UserAgent:        v.GetString("GEO_USER_AGENT"),
			RequestsPerSec:   v.GetFloat64("GEO_REQUESTS_PER_SEC"),
		},
		GoogleAuth: GoogleAuthConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded config; panics if Load was never called
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

// GetSafe returns the loaded config and whether it has been initialized
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
