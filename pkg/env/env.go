package env

import "os"

// Get reads an environment variable, returning fallback when the variable is
// unset or blank.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
