package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration
type Config struct {
	APIBaseURL string
	StorePath  string

	HTTPTimeout time.Duration

	RetryCount int
	RetryDelay time.Duration

	CacheStaleness time.Duration

	WorkspaceDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		APIBaseURL: getEnv("ABHYAASI_API_URL", "http://localhost:5000"),
		StorePath:  getEnv("ABHYAASI_STORE", "abhyaasi.db"),

		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		RetryCount: getEnvInt("RETRY_COUNT", 2),
		RetryDelay: time.Duration(getEnvInt("RETRY_DELAY_MS", 500)) * time.Millisecond,

		CacheStaleness: time.Duration(getEnvInt("CACHE_STALENESS_SECONDS", 60)) * time.Second,

		WorkspaceDir: getEnv("WORKSPACE_DIR", "workspace"),
	}

	// Validate critical configuration
	if AppConfig.APIBaseURL == "http://localhost:5000" {
		log.Println("Warning: Using default ABHYAASI_API_URL. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
