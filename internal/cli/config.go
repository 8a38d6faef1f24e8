package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerAddr string
	Username   string
	DataDir    string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerAddr: getEnvOrDefault("BAYOU_SERVER", "localhost:9432"),
		Username:   os.Getenv("BAYOU_USERNAME"),
		DataDir:    getEnvOrDefault("BAYOU_DATA", "data"),
		Output:     "text",
		Verbose:    false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
