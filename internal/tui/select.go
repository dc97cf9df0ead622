package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/reelmeta/internal/tmdb"
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *tmdb.SearchResult
}

// SelectOptions tunes Select.
type SelectOptions struct {
	// MinVotes hides results with fewer votes; obscure matches are rarely
	// the wanted title.
	MinVotes int
}

type searchItem struct {
	tmdb.SearchResult
}

func (i searchItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(i.DisplayTitle()), i.Year())
}

func (i searchItem) FilterValue() string {
	return i.DisplayTitle()
}

func (i searchItem) Description() string {
	return i.Overview
}

type searchDelegate struct {
	styles itemStyles
}

func (d searchDelegate) Height() int                         { return 5 }
func (d searchDelegate) Spacing() int                        { return 1 }
func (d searchDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d searchDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	result, ok := item.(searchItem)
	if !ok {
		return
	}

	overview := truncate(result.Overview, m.Width()-4)

	content := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.typeStyle.Render(fmt.Sprintf("[%s] #%d", strings.ToUpper(result.MediaType), result.ID)),
		d.styles.metadataStyle.Render(formatMetadata(result.SearchResult, m.Width()-4)),
		d.styles.titleStyle.Render(result.Title()),
		d.styles.ratingStyle.Render(fmt.Sprintf("%.1f/10", result.VoteAverage)),
		d.styles.overviewStyle.Render(overview),
	)
	_, _ = fmt.Fprint(w, d.styles.container(m, idx).Render(content))
}

// Select presents an interactive selection UI for TMDB search results.
func Select(title string, results []tmdb.SearchResult, opts SelectOptions) (SelectionResult, error) {
	items := make([]list.Item, 0, len(results))
	for _, result := range results {
		if result.VoteCount >= opts.MinVotes {
			items = append(items, searchItem{SearchResult: result})
		}
	}

	if len(items) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	header := fmt.Sprintf("%d results found for: %s", len(items), title)
	action, chosen, err := run(newPicker(header, items, searchDelegate{styles: newItemStyles()}))
	if err != nil {
		return SelectionResult{}, err
	}

	out := SelectionResult{Action: action}
	if item, ok := chosen.(searchItem); ok && action == ActionSelected {
		selection := item.SearchResult
		out.Selection = &selection
	}
	return out, nil
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata creates the metadata line with language, vote count, and popularity
func formatMetadata(result tmdb.SearchResult, availableWidth int) string {
	var parts []string

	if result.OriginalLang != "" {
		parts = append(parts, strings.ToUpper(result.OriginalLang))
	}
	if result.VoteCount > 0 {
		parts = append(parts, formatVoteCount(result.VoteCount))
	}
	if result.Popularity > 0 {
		parts = append(parts, fmt.Sprintf("📊%.1f", result.Popularity))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}
	return metadata
}

// formatVoteCount formats vote count in a compact way
func formatVoteCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	return fmt.Sprintf("%d votes", count)
}
