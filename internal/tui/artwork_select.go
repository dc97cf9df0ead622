package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/reelmeta/internal/artwork"
)

// ArtworkSelection holds the image chosen for one artwork slot.
type ArtworkSelection struct {
	Action SelectionAction
	Image  *artwork.FrontImage
}

type artworkItem struct {
	artwork.FrontImage
}

func (i artworkItem) Title() string {
	return fmt.Sprintf("%s %.0f", i.Source, i.Likes)
}

func (i artworkItem) FilterValue() string {
	return i.URL
}

func (i artworkItem) Description() string {
	return i.URL
}

type artworkDelegate struct {
	styles itemStyles
}

func (d artworkDelegate) Height() int                         { return 3 }
func (d artworkDelegate) Spacing() int                        { return 1 }
func (d artworkDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d artworkDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	image, ok := item.(artworkItem)
	if !ok {
		return
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.typeStyle.Render(fmt.Sprintf("[%s]", image.Source)),
		d.styles.metadataStyle.Render(formatArtworkMetadata(image.FrontImage)),
		d.styles.overviewStyle.Render(truncate(image.URL, m.Width()-4)),
	)
	_, _ = fmt.Fprint(w, d.styles.container(m, idx).Render(content))
}

// formatArtworkMetadata summarizes how a candidate was scored.
func formatArtworkMetadata(image artwork.FrontImage) string {
	lang := "no text"
	if image.Language != nil {
		lang = *image.Language
	}
	line := fmt.Sprintf("score %.0f | %s", image.Likes, lang)
	if image.Year > 0 {
		line += fmt.Sprintf(" | %d", image.Year)
	}
	if image.Drift > 0 {
		line += fmt.Sprintf(" | drift %d", image.Drift)
	}
	return line
}

// SelectArtwork lets the user choose one candidate for a slot such as
// "poster". Candidates are shown in the order given.
func SelectArtwork(title, slot string, candidates []artwork.FrontImage) (ArtworkSelection, error) {
	if len(candidates) == 0 {
		return ArtworkSelection{Action: ActionSkipped}, nil
	}

	items := make([]list.Item, len(candidates))
	for i, candidate := range candidates {
		items[i] = artworkItem{FrontImage: candidate}
	}

	header := fmt.Sprintf("Choose a %s for: %s", slot, title)
	action, chosen, err := run(newPicker(header, items, artworkDelegate{styles: newItemStyles()}))
	if err != nil {
		return ArtworkSelection{}, err
	}

	out := ArtworkSelection{Action: action}
	if item, ok := chosen.(artworkItem); ok && action == ActionSelected {
		image := item.FrontImage
		out.Image = &image
	}
	return out, nil
}
