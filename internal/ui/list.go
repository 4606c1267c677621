package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/huddle/internal/models"
)

var (
	_ list.Item = playItem{}
)

// playItem wraps [models.Play] to implement [list.Item].
type playItem struct {
	play models.Play
}

func (i playItem) FilterValue() string {
	return strings.Join([]string{i.play.Title(), i.play.Formation, i.play.PlayType}, " ")
}

func (i playItem) Title() string { return i.play.Title() }
func (i playItem) Description() string {
	parts := make([]string, 0, 3)
	if i.play.Formation != "" {
		parts = append(parts, models.FormationLabel(i.play.Formation))
	}
	if i.play.PlayType != "" {
		parts = append(parts, models.PlayTypeLabel(i.play.PlayType))
	}
	parts = append(parts, fmt.Sprintf("shared by %s", i.play.SharedBy))
	return strings.Join(parts, " • ")
}

// newPlaybookList builds the list shown in [PlaybookView].
func newPlaybookList(book *models.Playbook, width, height int) list.Model {
	var plays []models.Play
	if book != nil {
		plays = book.Plays
	}

	items := make([]list.Item, len(plays))
	for i, p := range plays {
		items[i] = playItem{play: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = fmt.Sprintf("Playbook (%d plays)", len(plays))
	l.SetShowHelp(false)
	return l
}
