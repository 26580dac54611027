package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Gateway holds configuration for the aggregation gateway binary.
type Gateway struct {
	BindAddr        string
	NASAAPIBase     string
	NASAImagesBase  string
	APIKey          string
	UpstreamTimeout time.Duration
	AllowedOrigins  []string
	MaxBodyBytes    int
}

// LoadGateway builds a Gateway config from environment variables.
func LoadGateway() (*Gateway, error) {
	c := &Gateway{
		BindAddr:        getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		NASAAPIBase:     getEnv("NASA_API_URL", "https://api.nasa.gov"),
		NASAImagesBase:  getEnv("NASA_IMAGES_URL", "https://images-api.nasa.gov"),
		APIKey:          getEnv("NASA_API_KEY", "DEMO_KEY"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", "15s"),
		AllowedOrigins:  splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:    getInt("GRAPHQL_MAX_BODY_BYTES", 1<<20),
	}

	if c.APIKey == "" {
		return nil, fmt.Errorf("NASA_API_KEY must not be empty")
	}
	if !strings.HasPrefix(c.NASAAPIBase, "http") {
		return nil, fmt.Errorf("NASA_API_URL must be an http(s) URL")
	}
	if !strings.HasPrefix(c.NASAImagesBase, "http") {
		return nil, fmt.Errorf("NASA_IMAGES_URL must be an http(s) URL")
	}
	if c.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if len(c.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must contain at least one origin")
	}
	if c.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("GRAPHQL_MAX_BODY_BYTES must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
