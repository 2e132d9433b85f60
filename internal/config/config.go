// Package config holds the settings of the omdb command, backed by viper.
package config

import (
	stdErrors "errors"
	"fmt"

	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyAPIKey    = "omdb.api_key"
	KeyBaseURL   = "omdb.base_url"
	KeyUserAgent = "omdb.user_agent"
	KeyRateLimit = "omdb.rate_limit"
	KeyFormat    = "output.format"
	KeyDBFile    = "datastore.dbfile"
	KeySave      = "datastore.enabled"
	KeyPosterDir = "poster.dir"

	KeyCacheEnabled = "cache.enabled"
	KeyCacheDB      = "cache.dbfile"
	KeyCacheTTL     = "cache.ttl"
)

const (
	DefaultBaseURL   = "http://www.omdbapi.com/"
	DefaultUserAgent = "OMDbGoClient/2.0"
	DefaultFormat    = "text"
	DefaultDBFile    = "./omdb.db"
	DefaultPosterDir = "./posters"
	DefaultCacheDB   = "./cache.db"
	DefaultCacheTTL  = "720h"
)

// Global configuration variables
var (
	// OMDBAPIKey is the key from the flat OMDBAPIKey setting, checked after
	// omdb.api_key.
	OMDBAPIKey string
	// OutputFormat is json, yaml or text.
	OutputFormat string
)

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyBaseURL, DefaultBaseURL)
	viper.SetDefault(KeyUserAgent, DefaultUserAgent)
	viper.SetDefault(KeyRateLimit, 0)
	viper.SetDefault(KeyFormat, DefaultFormat)
	viper.SetDefault(KeyDBFile, DefaultDBFile)
	viper.SetDefault(KeySave, false)
	viper.SetDefault(KeyPosterDir, DefaultPosterDir)
	viper.SetDefault(KeyCacheEnabled, false)
	viper.SetDefault(KeyCacheDB, DefaultCacheDB)
	viper.SetDefault(KeyCacheTTL, DefaultCacheTTL)
}

// Load binds environment variables and reads config.yaml from the given
// directories (the working directory when none are given). A missing config
// file is not an error.
func Load(paths ...string) error {
	SetDefaults()

	viper.AutomaticEnv()
	if err := viper.BindEnv(KeyAPIKey, "OMDB_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind OMDB_API_KEY: %w", err)
	}
	if err := viper.BindEnv(KeyBaseURL, "OMDB_BASE_URL"); err != nil {
		return fmt.Errorf("failed to bind OMDB_BASE_URL: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stdErrors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	InitConfig()
	return nil
}

// InitConfig copies viper values into the package variables.
func InitConfig() {
	OMDBAPIKey = viper.GetString("OMDBAPIKey")
	OutputFormat = viper.GetString(KeyFormat)
}

// GetAPIKey returns the OMDb API key, trying omdb.api_key (also set by
// OMDB_API_KEY) and then OMDBAPIKey.
func GetAPIKey() (string, error) {
	if apiKey := viper.GetString(KeyAPIKey); apiKey != "" {
		return apiKey, nil
	}
	if OMDBAPIKey != "" {
		return OMDBAPIKey, nil
	}
	return "", fmt.Errorf("OMDb API key not found (set --api-key, OMDB_API_KEY, omdb.api_key or OMDBAPIKey in config.yaml)")
}

// SetOutputFormat overrides the output format.
func SetOutputFormat(format string) {
	OutputFormat = format
	viper.Set(KeyFormat, format)
}
