package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

const (
	playsPath      = "/api/plays"
	forYouPath     = "/api/plays/fyp"
	videoOfDayPath = "/api/plays/video_of_day"
	playbookPath   = "/api/user_playbook"
)

type playsResponse struct {
	Plays []map[string]any `json:"plays"`
}

type playbookResponse struct {
	Plays      []map[string]any `json:"plays"`
	DiagramURL string           `json:"diagramUrl"`
}

// ListPlays fetches GET /api/plays with both filter keys present; "" leaves an axis unconstrained.
func (a *APIService) ListPlays(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
	var resp playsResponse
	if err := a.get(ctx, playsPath, filter.Values("play_type"), &resp); err != nil {
		return nil, err
	}
	return models.NormalizePlays(resp.Plays), nil
}

// ForYou fetches the recommendation feed.
func (a *APIService) ForYou(ctx context.Context) ([]models.Play, error) {
	var resp playsResponse
	if err := a.get(ctx, forYouPath, nil, &resp); err != nil {
		return nil, err
	}
	return models.NormalizePlays(resp.Plays), nil
}

// VideoOfDay fetches the featured play. The backend may answer with {play}, {plays: [...]} or a bare play object.
func (a *APIService) VideoOfDay(ctx context.Context) (*models.Play, error) {
	var raw map[string]any
	if err := a.get(ctx, videoOfDayPath, nil, &raw); err != nil {
		return nil, err
	}

	record := unwrapPlay(raw)
	if record == nil {
		return nil, fmt.Errorf("%w: no video of the day", shared.ErrPlayNotFound)
	}
	play := models.NormalizePlay(record)
	return &play, nil
}

// Playbook fetches the caller's saved plays. This endpoint spells the play type key "playType".
func (a *APIService) Playbook(ctx context.Context, filter models.FilterSelection) (*models.Playbook, error) {
	var resp playbookResponse
	if err := a.get(ctx, playbookPath, filter.Values("playType"), &resp); err != nil {
		return nil, err
	}

	return &models.Playbook{
		Plays:      models.NormalizePlays(resp.Plays),
		DiagramURL: a.AssetURL(resp.DiagramURL),
	}, nil
}

// SavePlay adds a play to the caller's playbook. Numeric ids are sent as JSON numbers.
func (a *APIService) SavePlay(ctx context.Context, playID string) error {
	if playID == "" {
		return fmt.Errorf("%w: play id", shared.ErrMissingArgument)
	}

	var id any = playID
	if n, err := strconv.ParseInt(playID, 10, 64); err == nil {
		id = n
	}
	return a.post(ctx, playbookPath, map[string]any{"play_id": id}, nil)
}

// CreatePlay uploads a clip after validating it locally.
func (a *APIService) CreatePlay(ctx context.Context, play models.NewPlay) (*models.Play, error) {
	if err := play.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var raw map[string]any
	if err := a.post(ctx, playsPath, play, &raw); err != nil {
		return nil, err
	}

	created := models.NormalizePlay(unwrapPlay(raw))
	if created.VideoURL == "" {
		created.VideoURL = play.URL
	}
	return &created, nil
}

func unwrapPlay(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	if p, ok := raw["play"].(map[string]any); ok {
		return p
	}
	if list, ok := raw["plays"].([]any); ok {
		if len(list) == 0 {
			return nil
		}
		p, _ := list[0].(map[string]any)
		return p
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

var _ PlaysClient = (*APIService)(nil)
