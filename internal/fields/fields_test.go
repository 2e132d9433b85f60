package fields

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/lepinkainen/omdb/errors"
)

func TestString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  string
		available bool
	}{
		{name: "value", input: "Gladiator", expected: "Gladiator", available: true},
		{name: "empty", input: "", available: false},
		{name: "blank", input: "   ", available: false},
		{name: "sentinel", input: "N/A", available: false},
		{name: "sentinel is case sensitive", input: "n/a", expected: "n/a", available: true},
		{name: "surrounding whitespace kept", input: " R ", expected: " R ", available: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := String(tc.input)
			assert.Equal(t, tc.available, ok)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestInt(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "thousands separated", input: "1,728,425", expected: 1728425},
		{name: "plain", input: "59069", expected: 59069},
		{name: "zero", input: "0", expected: 0},
		{name: "negative", input: "-3", expected: -3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := Int(tc.input)
			assert.NoError(t, err)
			assert.True(t, value != nil)
			assert.Equal(t, tc.expected, *value)
		})
	}
}

func TestInt_Absent(t *testing.T) {
	for _, input := range []string{"", " ", "N/A"} {
		value, err := Int(input)
		assert.NoError(t, err)
		assert.True(t, value == nil)
	}
}

func TestInt_NonNumeric(t *testing.T) {
	value, err := Int("12 min")
	assert.Error(t, err)
	assert.True(t, value == nil)
	assert.True(t, errors.IsParseError(err))
}

func TestFloat(t *testing.T) {
	value, err := Float("8.5")
	assert.NoError(t, err)
	assert.Equal(t, 8.5, *value)

	value, err = Float("N/A")
	assert.NoError(t, err)
	assert.True(t, value == nil)

	_, err = Float("eight")
	assert.True(t, errors.IsParseError(err))
}

func TestFloat_NonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-Inf", "+Infinity"} {
		value, err := Float(raw)
		assert.True(t, errors.IsParseError(err), raw)
		assert.True(t, value == nil, raw)
	}
}

func TestList(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "genres", input: "Action, Adventure, Drama", expected: []string{"Action", "Adventure", "Drama"}},
		{name: "single", input: "Ridley Scott", expected: []string{"Ridley Scott"}},
		{name: "empty", input: "", expected: []string{}},
		{name: "blank", input: "  ", expected: []string{}},
		{name: "sentinel", input: "N/A", expected: []string{}},
		{name: "blank segments dropped", input: "English, , French,", expected: []string{"English", "French"}},
		{name: "duplicates kept", input: "A, B, A", expected: []string{"A", "B", "A"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := List(tc.input)
			assert.True(t, result != nil)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDate(t *testing.T) {
	expected := time.Date(2011, time.April, 17, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		input string
	}{
		{name: "media layout", input: "17 Apr 2011"},
		{name: "episode layout", input: "2011-04-17"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := Date(tc.input)
			assert.NoError(t, err)
			assert.True(t, value != nil)
			assert.True(t, expected.Equal(*value))
		})
	}
}

func TestDate_ZeroPaddedDay(t *testing.T) {
	value, err := Date("05 May 2000")
	assert.NoError(t, err)
	assert.True(t, time.Date(2000, time.May, 5, 0, 0, 0, 0, time.UTC).Equal(*value))
}

func TestDate_Absent(t *testing.T) {
	value, err := Date("N/A")
	assert.NoError(t, err)
	assert.True(t, value == nil)
}

func TestDate_Invalid(t *testing.T) {
	_, err := Date("not a date")
	assert.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestScrub(t *testing.T) {
	type rating struct {
		Source string
		Value  string
	}
	type record struct {
		Title    string
		Rated    string
		Awards   string
		Ratings  []rating
		Nested   *rating
		Extra    map[string]string
		internal string
	}

	r := record{
		Title:    "Gladiator",
		Rated:    "N/A",
		Awards:   " ",
		Ratings:  []rating{{Source: "Metacritic", Value: "N/A"}},
		Nested:   &rating{Source: "N/A", Value: "80%"},
		Extra:    map[string]string{"Website": "N/A", "Production": "DreamWorks"},
		internal: "N/A",
	}

	Scrub(&r)

	assert.Equal(t, "Gladiator", r.Title)
	assert.Equal(t, "", r.Rated)
	assert.Equal(t, "", r.Awards)
	assert.Equal(t, "", r.Ratings[0].Value)
	assert.Equal(t, "Metacritic", r.Ratings[0].Source)
	assert.Equal(t, "", r.Nested.Source)
	assert.Equal(t, "80%", r.Nested.Value)
	assert.Equal(t, "", r.Extra["Website"])
	assert.Equal(t, "DreamWorks", r.Extra["Production"])
	assert.Equal(t, "N/A", r.internal)
}

func TestScrub_NonPointerIgnored(t *testing.T) {
	s := struct{ Title string }{Title: "N/A"}
	Scrub(s)
	assert.Equal(t, "N/A", s.Title)
	Scrub(nil)
}
