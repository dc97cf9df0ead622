package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/reelmeta/internal/artwork"
	"github.com/lepinkainen/reelmeta/internal/obsidian"
	"github.com/lepinkainen/reelmeta/internal/tmdb"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	// formatMarkdown writes an Obsidian note and only applies to movie
	// and show details.
	formatMarkdown = "markdown"
)

func validFormat(format string) bool {
	switch format {
	case formatTable, formatJSON, formatYAML, formatMarkdown:
		return true
	}
	return false
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// table is the plain-text rendering of a command result.
type table struct {
	headers []string
	rows    [][]string
}

// render writes value in the app's output format, falling back to t for
// the table format.
func (a *App) render(value any, t table) error {
	switch a.Format {
	case formatJSON:
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case formatYAML:
		enc := yaml.NewEncoder(a.Out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case formatMarkdown:
		return errors.New("markdown output is only available for movie and show details")
	default:
		return t.write(a.Out)
	}
}

// renderMedia renders a movie or show payload. Unlike render it also
// supports the markdown format.
func (a *App) renderMedia(p tmdb.Payload, kind string) error {
	if a.Format != formatMarkdown {
		return a.render(p, payloadTable(p))
	}

	note := obsidian.FromMedia(p, kind)
	if poster := cast.ToString(p["poster_path"]); poster != "" {
		note.Frontmatter.Set("cover", a.TMDB.ImageURL(poster))
	}

	out, err := note.Build()
	if err != nil {
		return fmt.Errorf("build note: %w", err)
	}
	_, err = a.Out.Write(out)
	return err
}

func (t table) write(w io.Writer) error {
	if len(t.rows) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("no results"))
		return err
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell
			if i < len(cells)-1 {
				padded += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			}
			if style != nil {
				padded = style.Render(padded)
			}
			parts[i] = padded
		}
		return strings.Join(parts, "  ")
	}

	if _, err := fmt.Fprintln(w, line(t.headers, &headerStyle)); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(w, line(row, nil)); err != nil {
			return err
		}
	}
	return nil
}

// payloadTable lists the top-level fields of a TMDB payload. Nested values
// are summarized; use json or yaml output to see them.
func payloadTable(p tmdb.Payload) table {
	t := table{headers: []string{"FIELD", "VALUE"}}
	for _, key := range slices.Sorted(maps.Keys(p)) {
		t.rows = append(t.rows, []string{key, summarize(p[key])})
	}
	return t
}

func summarize(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		return truncateCell(v, 80)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.DateOnly)
	case map[string]any:
		return fmt.Sprintf("{%d fields}", len(v))
	case []any:
		return fmt.Sprintf("[%d items]", len(v))
	default:
		return fmt.Sprint(v)
	}
}

func truncateCell(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-3]) + "..."
}

func resultsTable(results []tmdb.SearchResult) table {
	t := table{headers: []string{"ID", "TYPE", "TITLE", "YEAR", "RATING", "VOTES"}}
	for _, r := range results {
		t.rows = append(t.rows, []string{
			strconv.Itoa(r.ID),
			r.MediaType,
			truncateCell(r.DisplayTitle(), 60),
			r.Year(),
			strconv.FormatFloat(r.VoteAverage, 'f', 1, 64),
			strconv.Itoa(r.VoteCount),
		})
	}
	return t
}

var artworkHeaders = []string{"SLOT", "SOURCE", "LIKES", "LANG", "YEAR", "DRIFT", "URL"}

func imagesTable(images artwork.FrontImages) table {
	t := table{headers: artworkHeaders}
	for _, slot := range []struct {
		name   string
		images []artwork.FrontImage
	}{
		{"poster", images.Posters},
		{"backdrop", images.Backdrops},
		{"logo", images.Logos},
	} {
		for _, img := range slot.images {
			t.rows = append(t.rows, imageRow(slot.name, img))
		}
	}
	return t
}

func picksTable(picks artwork.Picks) table {
	t := table{headers: artworkHeaders}
	for _, slot := range []struct {
		name  string
		image *artwork.FrontImage
	}{
		{"poster", picks.Poster},
		{"backdrop", picks.Backdrop},
		{"logo", picks.Logo},
	} {
		if slot.image != nil {
			t.rows = append(t.rows, imageRow(slot.name, *slot.image))
		}
	}
	return t
}

func imageRow(slot string, img artwork.FrontImage) []string {
	lang := "-"
	if img.Language != nil {
		lang = *img.Language
	}
	year := "-"
	if img.Year > 0 {
		year = strconv.Itoa(img.Year)
	}
	return []string{
		slot,
		string(img.Source),
		strconv.FormatFloat(img.Likes, 'f', -1, 64),
		lang,
		year,
		strconv.Itoa(img.Drift),
		img.URL,
	}
}
