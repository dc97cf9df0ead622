package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lepinkainen/reelmeta/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	TMDBAPIKey   string
	FanartAPIKey string
	Language     string
	Country      string
	RateLimit    int
	Format       string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		TMDBAPIKey:   config.TMDBAPIKey,
		FanartAPIKey: config.FanartAPIKey,
		Language:     config.Language,
		Country:      config.Country,
		RateLimit:    config.RateLimit,
		Format:       config.Format,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.TMDBAPIKey = state.TMDBAPIKey
	config.FanartAPIKey = state.FanartAPIKey
	config.Language = state.Language
	config.Country = state.Country
	config.RateLimit = state.RateLimit
	config.Format = state.Format
}

// configEnv lists the environment variables the CLI reads configuration
// from. They are blanked so the developer's shell cannot leak into tests.
var configEnv = []string{
	"TMDB_API_KEY",
	"FANART_API_KEY",
	"REELMETA_LANGUAGE",
	"REELMETA_COUNTRY",
	"REELMETA_RATELIMIT",
	"REELMETA_FORMAT",
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper and blanks the
// configuration environment.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*ConfigState)

// WithTMDBAPIKey sets the TMDB API key.
func WithTMDBAPIKey(key string) SetTestConfigOption {
	return func(s *ConfigState) { s.TMDBAPIKey = key }
}

// WithFanartAPIKey sets the fanart.tv API key.
func WithFanartAPIKey(key string) SetTestConfigOption {
	return func(s *ConfigState) { s.FanartAPIKey = key }
}

// WithLocale sets the preferred language and country.
func WithLocale(language, country string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.Language = language
		s.Country = country
	}
}

// WithFormat sets the output format.
func WithFormat(format string) SetTestConfigOption {
	return func(s *ConfigState) { s.Format = format }
}

// SetTestConfig resets the configuration and applies test defaults plus
// opts. Everything is restored when the test completes.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	state := ConfigState{
		TMDBAPIKey:   "test-tmdb-key",
		FanartAPIKey: "test-fanart-key",
		RateLimit:    config.DefaultRateLimit,
		Format:       config.DefaultFormat,
	}
	for _, opt := range opts {
		opt(&state)
	}
	RestoreConfigState(state)
}
