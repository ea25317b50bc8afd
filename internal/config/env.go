package config

import (
	"os"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvLocation = "CRONEXP_TZ"
	EnvFold     = "CRONEXP_FOLD"
)

// Env holds the defaults taken from the environment.
type Env struct {
	Location string
	Fold     string
}

// FromEnv reads CRONEXP_TZ (default "Local") and CRONEXP_FOLD (default "skip").
func FromEnv() Env {
	return Env{
		Location: stringOrDefault(EnvLocation, "Local"),
		Fold:     strings.ToLower(stringOrDefault(EnvFold, "skip")),
	}
}

func stringOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}
