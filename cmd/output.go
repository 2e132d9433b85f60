package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/omdb/codec"
	"github.com/lepinkainen/omdb/internal/config"
	"github.com/lepinkainen/omdb/model"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"

	dateLayout = "2006-01-02"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Width(12)
	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// writeOutput renders items in the configured format. JSON output uses the
// OMDb wire shape; a single item is written as an object, several as an array.
func writeOutput[T any](w io.Writer, items []T, text func(io.Writer, T)) error {
	switch format := strings.ToLower(config.OutputFormat); format {
	case formatJSON:
		return writeJSON(w, items)
	case formatYAML:
		return writeYAML(w, items)
	case formatText, "":
		for i, item := range items {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			text(w, item)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use json, yaml or text)", format)
	}
}

func writeJSON[T any](w io.Writer, items []T) error {
	cdc := codec.New()
	encoded := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := cdc.Encode(item)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		encoded = append(encoded, data)
	}

	var v any = encoded
	if len(encoded) == 1 {
		v = encoded[0]
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}

func writeYAML[T any](w io.Writer, items []T) error {
	var v any = items
	if len(items) == 1 {
		v = items[0]
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func writeField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label), value)
}

func writeHeading(w io.Writer, m model.Media) {
	heading := m.Title
	if m.Year != "" {
		heading = fmt.Sprintf("%s (%s)", heading, m.Year)
	}
	_, _ = fmt.Fprintln(w, titleStyle.Render(heading))
}

func writeMedia(w io.Writer, m model.Media) {
	writeField(w, "Rated", m.Rated)
	writeField(w, "Released", formatDate(m.Released))
	writeField(w, "Runtime", m.Runtime)
	writeField(w, "Genres", strings.Join(m.Genres, ", "))
	writeField(w, "Directors", strings.Join(m.Directors, ", "))
	writeField(w, "Writers", strings.Join(m.Writers, ", "))
	writeField(w, "Actors", strings.Join(m.Actors, ", "))
	writeField(w, "Languages", strings.Join(m.Languages, ", "))
	writeField(w, "Countries", strings.Join(m.Countries, ", "))
	writeField(w, "Awards", m.Awards)
	writeField(w, "IMDb", formatRating(m.IMDbRating, m.IMDbVotes))
	writeField(w, "Metascore", m.Metascore)
	for _, r := range m.Ratings {
		writeField(w, r.Source, r.Value)
	}
	writeField(w, "IMDb ID", m.IMDbID)
	if m.Plot != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", m.Plot)
	}
}

func writeMovieText(w io.Writer, m model.Movie) {
	writeHeading(w, m.Media)
	writeMedia(w, m.Media)
	writeField(w, "DVD", formatDate(m.DVD))
	writeField(w, "Box office", m.BoxOffice)
	writeField(w, "Production", m.Production)
	writeField(w, "Website", m.Website)
}

func writeSeriesText(w io.Writer, s model.Series) {
	writeHeading(w, s.Media)
	writeField(w, "Seasons", formatInt(s.TotalSeasons))
	writeMedia(w, s.Media)
}

func writeEpisodeText(w io.Writer, e model.Episode) {
	writeHeading(w, e.Media)
	writeField(w, "Episode", fmt.Sprintf("S%sE%s", formatInt(e.Season), formatInt(e.Episode)))
	writeField(w, "Series ID", e.SeriesID)
	writeMedia(w, e.Media)
}

func writeSeasonText(w io.Writer, s model.Season) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s: season %s of %s",
		s.Title, formatInt(s.Season), formatInt(s.TotalSeasons))))
	for _, e := range s.Episodes {
		_, _ = fmt.Fprintf(w, "%3s  %-40s %-10s %4s  %s\n",
			formatInt(e.Episode), e.Title, formatDate(e.Released),
			formatFloat(e.IMDbRating), faintStyle.Render(e.IMDbID))
	}
}

func writeSearchText(w io.Writer, s model.SearchResponse) {
	for _, r := range s.Results {
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			titleStyle.Render(fmt.Sprintf("%s (%s)", r.Title, r.Year)),
			labelStyle.UnsetWidth().Render("["+r.Type.String()+"]"),
			faintStyle.Render(r.IMDbID))
	}
	if s.TotalResults != nil {
		_, _ = fmt.Fprintf(w, "%d of %d results\n", len(s.Results), *s.TotalResults)
	}
}

func formatInt(n *int) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(*n)
}

func formatFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatRating(rating *float64, votes *int) string {
	if rating == nil {
		return ""
	}
	if votes == nil {
		return formatFloat(rating) + "/10"
	}
	return fmt.Sprintf("%s/10 (%d votes)", formatFloat(rating), *votes)
}
