package cli

import (
	"os"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
	Timeout   time.Duration
}

// DefaultTimeout bounds each request the CLI makes to the store
const DefaultTimeout = 10 * time.Second

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("GAMEHORIZON_SERVER", "http://localhost:3001"),
		Output:    "text",
		Verbose:   false,
		Timeout:   DefaultTimeout,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
