package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/omdb/internal/fields"
)

func TestEmbeddedMediaIsScrubbed(t *testing.T) {
	var movie Movie
	require.NoError(t, json.Unmarshal([]byte(`{"Title":"Gladiator","Metascore":"N/A","DVD":"N/A"}`), &movie))

	fields.Scrub(&movie)

	assert.Equal(t, "Gladiator", movie.Title)
	assert.Empty(t, movie.Metascore)
	assert.Empty(t, movie.DVD)
}
