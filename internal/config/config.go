package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendDatabase = "database"
	BackendREST     = "rest"
)

// Config holds all application configuration
type Config struct {
	Env      string `validate:"required"`
	HTTPAddr string `validate:"required"`

	DatabaseURL string `validate:"required_if=DirectoryBackend database"`

	// Where professional searches are sent
	DirectoryBackend string `validate:"oneof=database rest"`
	DirectoryURL     string `validate:"required_if=DirectoryBackend rest,omitempty,url"`
	DirectoryAPIKey  string
	DirectoryTable   string `validate:"required"`

	GeminiAPIKey string
	GeminiModel  string `validate:"required"`

	SearchDebounce time.Duration `validate:"gte=0"`
	SearchLimit    int           `validate:"gte=1,lte=50"`

	// Per-client requests per second on the search route; 0 disables
	SearchRatePerSecond float64 `validate:"gte=0"`
	SearchRateBurst     int     `validate:"required_unless=SearchRatePerSecond 0,gte=0"`

	// Optional result cache in front of the directory
	RedisURL       string        `validate:"omitempty,url"`
	SearchCacheTTL time.Duration `validate:"gte=0"`

	CORSOrigins []string
}

// CacheEnabled reports whether searches go through the Redis cache.
func (c Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.SearchCacheTTL > 0
}

// Load reads a .env file when one exists and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	return Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=password dbname=prosearch port=5432 sslmode=disable"),
		DirectoryBackend: strings.ToLower(getEnv("DIRECTORY_BACKEND", BackendDatabase)),
		DirectoryURL:     os.Getenv("DIRECTORY_URL"),
		DirectoryAPIKey:  os.Getenv("DIRECTORY_API_KEY"),
		DirectoryTable:   getEnv("DIRECTORY_TABLE", "professionals"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SearchDebounce:   time.Duration(getEnvInt("SEARCH_DEBOUNCE_MS", 400)) * time.Millisecond,
		SearchLimit:      getEnvInt("SEARCH_LIMIT", 20),

		SearchRatePerSecond: getEnvFloat("SEARCH_RATE_PER_SEC", 10),
		SearchRateBurst:     getEnvInt("SEARCH_RATE_BURST", 20),

		RedisURL:       os.Getenv("REDIS_URL"),
		SearchCacheTTL: time.Duration(getEnvInt("SEARCH_CACHE_TTL_SEC", 30)) * time.Second,

		CORSOrigins: getEnvList("CORS_ORIGINS"),
	}
}

// Validate checks the struct tags above.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
