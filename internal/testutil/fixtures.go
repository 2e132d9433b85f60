package testutil

import (
	"embed"
	"testing"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Fixture returns the contents of a recorded OMDb response from testdata,
// e.g. Fixture(t, "Movie.json").
func Fixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}
