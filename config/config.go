package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	ProductionBaseURL = "https://bookchat-api.example.com"
	LocalBaseURL      = "http://localhost:8000"
)

type Config struct {
	AppEnv string
	// explicit override, wins over AppEnv
	APIBaseURL     string
	UserIdentifier string

	// stub backend
	StubPort      string
	StubVersion   string
	StubRateLimit int
	AllowOrigins  string
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:         os.Getenv("APP_ENV"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		UserIdentifier: os.Getenv("CHAT_USER_ID"),
		StubPort:       envOr("STUB_PORT", "8000"),
		StubVersion:    envOr("STUB_VERSION", "0.0.0-stub"),
		StubRateLimit:  envInt("STUB_RATE_LIMIT", 10),
		AllowOrigins:   envOr("ALLOWORIGINS", "*"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod"
}

// BaseURL is the backend root handed to services.NewChatClient.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return ResolveBaseURL(c.IsProduction())
}

// ResolveBaseURL picks one of the two fixed deployments.
func ResolveBaseURL(production bool) string {
	if production {
		return ProductionBaseURL
	}
	return LocalBaseURL
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
