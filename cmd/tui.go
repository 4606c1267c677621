package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/huddle/internal/player"
	"github.com/desertthunder/huddle/internal/shared"
	"github.com/desertthunder/huddle/internal/ui"
	"github.com/urfave/cli/v3"
)

func parseView(s string) (ui.View, error) {
	for _, v := range []ui.View{ui.HomeView, ui.SearchView, ui.PlaybookView} {
		if v.String() == s {
			return v, nil
		}
	}
	return ui.HomeView, fmt.Errorf("%w: view must be home, search or playbook, got %q", shared.ErrInvalidFlag, s)
}

// Feed launches the interactive play feed.
func (r *Runner) Feed(ctx context.Context, cmd *cli.Command) error {
	start, err := parseView(cmd.String("view"))
	if err != nil {
		return err
	}

	api, err := r.client()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	config := r.Config()
	playerConfig := config.Player
	if backend := cmd.String("player"); backend != "" {
		playerConfig.Backend = backend
	}

	mp := player.New(playerConfig, shared.WithLogger(fileLogger, "component", "player"))
	defer mp.Close()

	model := ui.NewModel(ctx, ui.Options{
		Client: api,
		Likes:  r.likes,
		Player: mp,
		Config: config.Feed,
		Mute:   playerConfig.Mute,
		Logger: shared.WithLogger(fileLogger, "component", "ui"),
		Start:  start,
		Filter: filterFromFlags(cmd),
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
