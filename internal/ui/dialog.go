package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/huddle/internal/feed"
	"github.com/desertthunder/huddle/internal/models"
)

var anyOption = models.Option{Value: "", Label: "All"}

// filterDialog edits the staged side of a [feed.FilterStore]. Nothing is committed until the model
// calls [feed.Feed.ApplyStaged].
type filterDialog struct {
	store *feed.FilterStore
	axis  models.Axis
}

func openFilterDialog(store *feed.FilterStore) *filterDialog {
	store.Open()
	return &filterDialog{store: store, axis: models.AxisFormation}
}

func dialogOptions(axis models.Axis) []models.Option {
	src := models.Formations
	if axis == models.AxisPlayType {
		src = models.PlayTypes
	}
	return append([]models.Option{anyOption}, src...)
}

func (d *filterDialog) switchAxis() {
	if d.axis == models.AxisFormation {
		d.axis = models.AxisPlayType
	} else {
		d.axis = models.AxisFormation
	}
}

func (d *filterDialog) cursor(axis models.Axis) int {
	staged := d.store.Staged().Get(axis)
	for i, o := range dialogOptions(axis) {
		if o.Value == staged {
			return i
		}
	}
	return 0
}

// move shifts the staged value on the focused axis by delta, wrapping around the vocabulary.
func (d *filterDialog) move(delta int) {
	options := dialogOptions(d.axis)
	i := (d.cursor(d.axis) + delta + len(options)) % len(options)
	switch d.axis {
	case models.AxisFormation:
		d.store.SetFormation(options[i].Value)
	case models.AxisPlayType:
		d.store.SetPlayType(options[i].Value)
	}
}

func (d *filterDialog) cancel() {
	d.store.Cancel()
}

func (d *filterDialog) column(axis models.Axis, title string) string {
	var b strings.Builder
	heading := styles.dim.Render(title)
	if axis == d.axis {
		heading = styles.accent.Render(title)
	}
	b.WriteString(heading + "\n")

	selected := d.cursor(axis)
	for i, o := range dialogOptions(axis) {
		line := "  " + o.Label
		if i == selected {
			line = styles.ok.Render("› " + o.Label)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (d *filterDialog) View() string {
	cols := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(24).Render(d.column(models.AxisFormation, "Formation")),
		d.column(models.AxisPlayType, "Play type"),
	)
	return styles.card.Render(styles.title.Render("Filter plays") + "\n" + cols)
}
