package util

import "os"

// Getenv returns the environment variable, falling back to defaultValue
// when it is unset or empty
func Getenv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}
