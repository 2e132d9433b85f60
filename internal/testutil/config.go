package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lepinkainen/omdb/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OMDBAPIKey   string
	OutputFormat string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OMDBAPIKey:   config.OMDBAPIKey,
		OutputFormat: config.OutputFormat,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OMDBAPIKey = state.OMDBAPIKey
	config.OutputFormat = state.OutputFormat
}

// ResetConfig resets viper and restores the config package variables when
// the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig resets the configuration and points it at baseURL with a
// test API key. Everything is restored when the test completes.
func SetTestConfig(t *testing.T, baseURL string) {
	t.Helper()

	ResetConfig(t)
	config.SetDefaults()
	viper.Set(config.KeyAPIKey, "test-omdb-key")
	viper.Set(config.KeyBaseURL, baseURL)
	config.InitConfig()
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupDatastore points the datastore at a database inside env and returns
// its path.
func SetupDatastore(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("omdb.db")
	SetViperValue(t, config.KeyDBFile, dbPath)
	return dbPath
}
