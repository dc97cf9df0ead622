package config

import (
	"github.com/spf13/viper"
)

// Default values for settings that are optional in config.yaml.
const (
	DefaultRateLimit = 40
	DefaultFormat    = "table"
)

// Global configuration variables
var (
	// TMDBAPIKey is the API key for TheMovieDB
	TMDBAPIKey string
	// FanartAPIKey is the personal API key for fanart.tv
	FanartAPIKey string
	// Language is the preferred ISO 639-1 language for metadata and artwork
	Language string
	// Country is the preferred ISO 3166-1 region, used to pick an Apple store front
	Country string
	// RateLimit caps TMDB requests per second
	RateLimit int
	// Format is the default output format of the commands
	Format string
)

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("Language", "")
	viper.SetDefault("Country", "")
	viper.SetDefault("RateLimit", DefaultRateLimit)
	viper.SetDefault("Format", DefaultFormat)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	TMDBAPIKey = viper.GetString("TMDBAPIKey")
	FanartAPIKey = viper.GetString("FanartAPIKey")
	Language = viper.GetString("Language")
	Country = viper.GetString("Country")
	RateLimit = viper.GetInt("RateLimit")
	if RateLimit <= 0 {
		RateLimit = DefaultRateLimit
	}
	Format = viper.GetString("Format")
}

// SetLanguage overrides the configured language when lang is set.
func SetLanguage(lang string) {
	if lang != "" {
		Language = lang
	}
}

// SetCountry overrides the configured country when country is set.
func SetCountry(country string) {
	if country != "" {
		Country = country
	}
}
