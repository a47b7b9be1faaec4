package env

import "os"

// GetEnv returns the value of key or fallback when the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// MustGetEnv panics when key is unset. Used for credentials that have to be
// present before the process starts serving.
func MustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable is not set: " + key)
	}
	return value
}
