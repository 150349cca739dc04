package config

import (
	"fmt"
	"os"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port             string
	Env              string
	MongoURI         string
	DBName           string
	RedisAddr        string
	RedisPassword    string
	JWTSecret        string
	JWTRefreshSecret string
	FrontendURL      string
}

// Load builds Config from the environment. Missing connection strings or
// signing secrets are a startup error: the process refuses to run degraded.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		MongoURI:         os.Getenv("MONGODB_URI"),
		DBName:           getEnv("DB", "nova_properties"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASS"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI not set in environment")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR not set in environment")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set in environment")
	}
	if cfg.JWTRefreshSecret == "" {
		// Falling back to the access secret keeps single-secret deployments
		// working, matching the deployed configuration.
		cfg.JWTRefreshSecret = cfg.JWTSecret
	}

	return cfg, nil
}

// IsProduction reports whether the app runs in production mode. Cookie
// Secure/SameSite attributes depend on it.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
