package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/omdb/internal/config"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	assert.Equal(t, filepath.Join(env.RootDir(), "posters", "a.jpg"), env.Path("posters", "a.jpg"))
	assert.Equal(t, env.RootDir(), env.Path("."))
}

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFile("nested/dir/file.txt", []byte("hello"))

	assert.True(t, env.FileExists("nested/dir/file.txt"))
	assert.False(t, env.FileExists("missing.txt"))
	assert.Equal(t, []byte("hello"), env.ReadFile("nested/dir/file.txt"))
}

func TestTestEnv_Chdir(t *testing.T) {
	env := NewTestEnv(t)
	origDir, err := os.Getwd()
	require.NoError(t, err)

	t.Run("inside", func(t *testing.T) {
		inner := NewTestEnv(t)
		inner.Chdir(".")

		wd, err := os.Getwd()
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(inner.RootDir())
		require.NoError(t, err)
		assert.Equal(t, resolved, wd)
	})

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, origDir, wd)
	assert.NotEmpty(t, env.RootDir())
}

func TestFixture(t *testing.T) {
	for _, name := range []string{
		"Movie.json", "Series.json", "Season.json", "Episode.json",
		"MovieSearchResponse.json", "SeriesSearchResponse.json", "MovieNotFound.json",
	} {
		var doc map[string]any
		require.NoError(t, json.Unmarshal(Fixture(t, name), &doc), name)
		assert.Contains(t, doc, "Response", name)
	}
}

func TestServer_RecordsRequests(t *testing.T) {
	server := NewServer(t, Response{
		Status:  http.StatusTeapot,
		Body:    []byte(`{"Response":"False"}`),
		Headers: map[string]string{"Retry-After": "5"},
	})

	resp, err := server.Client().Get(server.URL + "/?i=tt1")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get("Retry-After"))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"Response":"False"}`, string(body))

	require.Len(t, server.Requests(), 1)
	assert.Equal(t, "tt1", server.LastRequest(t).URL.Query().Get("i"))
}

func TestSetTestConfig(t *testing.T) {
	origFormat := config.OutputFormat

	t.Run("sets test values", func(t *testing.T) {
		SetTestConfig(t, "http://localhost:9999/")
		config.OutputFormat = "json"

		key, err := config.GetAPIKey()
		require.NoError(t, err)
		assert.Equal(t, "test-omdb-key", key)
		assert.Equal(t, "http://localhost:9999/", viper.GetString(config.KeyBaseURL))
	})

	assert.Equal(t, origFormat, config.OutputFormat)
	assert.False(t, viper.IsSet(config.KeyAPIKey))
}

func TestSetupDatastore(t *testing.T) {
	ResetConfig(t)
	env := NewTestEnv(t)

	path := SetupDatastore(t, env)

	assert.Equal(t, env.Path("omdb.db"), path)
	assert.Equal(t, path, viper.GetString(config.KeyDBFile))
}
