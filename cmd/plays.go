package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
	"github.com/desertthunder/huddle/internal/ui"
	"github.com/urfave/cli/v3"
)

func filterFromFlags(cmd *cli.Command) models.FilterSelection {
	return models.NewFilterSelection(cmd.String("formation"), cmd.String("play-type"))
}

// writePlays prints plays as JSON or a numbered list under title.
func (r *Runner) writePlays(cmd *cli.Command, title string, plays []models.Play) error {
	if err := r.likes.Annotate(plays); err != nil {
		r.logger.Warn("failed to read local likes", "error", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(plays, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d)", title, len(plays)))
	if len(plays) == 0 {
		return r.writePlain("No plays found\n")
	}
	for i, p := range plays {
		r.writePlay(i, p)
	}
	return nil
}

// PlaysList lists plays, narrowed by --formation and --play-type.
func (r *Runner) PlaysList(ctx context.Context, cmd *cli.Command) error {
	api, err := r.client()
	if err != nil {
		return err
	}

	filter := filterFromFlags(cmd)
	r.logger.Debug("listing plays", "filter", filter)

	plays, err := api.ListPlays(ctx, filter)
	if err != nil {
		return err
	}

	title := "Plays"
	if !filter.IsZero() {
		title = "Plays · " + filter.String()
	}
	return r.writePlays(cmd, title, plays)
}

// PlaysForYou lists the recommended plays.
func (r *Runner) PlaysForYou(ctx context.Context, cmd *cli.Command) error {
	api, err := r.client()
	if err != nil {
		return err
	}

	plays, err := api.ForYou(ctx)
	if err != nil {
		return err
	}
	return r.writePlays(cmd, "For you", plays)
}

// PlaysToday shows the play of the day.
func (r *Runner) PlaysToday(ctx context.Context, cmd *cli.Command) error {
	api, err := r.client()
	if err != nil {
		return err
	}

	play, err := api.VideoOfDay(ctx)
	if err != nil {
		return err
	}
	return r.writePlays(cmd, "Play of the day", []models.Play{*play})
}

// PlaysUpload uploads a clip. Without --url and --type the upload form is shown.
func (r *Runner) PlaysUpload(ctx context.Context, cmd *cli.Command) error {
	upload := models.NewPlay{
		URL:       cmd.String("url"),
		Type:      cmd.String("type"),
		Formation: cmd.String("formation"),
		Caption:   cmd.String("caption"),
	}
	if upload.URL == "" || upload.Type == "" {
		if err := ui.NewUploadForm(&upload).RunWithContext(ctx); err != nil {
			return fmt.Errorf("upload cancelled: %w", err)
		}
	}
	return r.createPlay(ctx, upload)
}

// PlaysShare adds a clip shared from another platform, attributed to that platform.
func (r *Runner) PlaysShare(ctx context.Context, cmd *cli.Command) error {
	link := strings.TrimSpace(cmd.StringArg("url"))
	if link == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	upload := models.NewPlay{
		URL:       link,
		Type:      cmd.String("type"),
		Formation: cmd.String("formation"),
		Caption:   cmd.String("caption"),
		SharedBy:  models.SharedPlatform(link),
	}
	if upload.Type == "" {
		if err := ui.NewUploadForm(&upload).RunWithContext(ctx); err != nil {
			return fmt.Errorf("share cancelled: %w", err)
		}
	}
	return r.createPlay(ctx, upload)
}

func (r *Runner) createPlay(ctx context.Context, upload models.NewPlay) error {
	api, err := r.client()
	if err != nil {
		return err
	}

	r.logger.Info("uploading play", "url", upload.URL, "type", upload.Type)
	play, err := api.CreatePlay(ctx, upload)
	if err != nil {
		return err
	}

	r.writePlain("✓ Uploaded play %s\n", play.ID)
	r.writePlay(0, *play)
	return nil
}

// PlaysSave adds a play to the caller's playbook.
func (r *Runner) PlaysSave(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: play id", shared.ErrMissingArgument)
	}

	api, err := r.client()
	if err != nil {
		return err
	}
	if err := api.SavePlay(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Saved play %s to your playbook\n", id)
}

// PlaysLike toggles a like stored on this machine.
func (r *Runner) PlaysLike(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: play id", shared.ErrMissingArgument)
	}

	if err := r.store(); err != nil {
		return err
	}
	liked, err := r.likes.Toggle(id)
	if err != nil {
		return err
	}

	if liked {
		return r.writePlain("♥ Liked play %s\n", id)
	}
	return r.writePlain("♡ Unliked play %s\n", id)
}

// PlaysOpen opens a clip URL in the default browser.
func (r *Runner) PlaysOpen(ctx context.Context, cmd *cli.Command) error {
	link := cmd.StringArg("url")
	if link == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}
	if err := shared.OpenBrowser(link); err != nil {
		return err
	}
	return r.writePlain("Opened %s\n", link)
}
