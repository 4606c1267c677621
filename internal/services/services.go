package services

import (
	"context"

	"github.com/desertthunder/huddle/internal/models"
)

// Session is the credential collaborator.
type Session interface {
	// Token returns the current bearer token or [shared.ErrNotAuthenticated].
	Token() (string, error)

	// OnUnauthorized is called after the backend rejects the token.
	OnUnauthorized()
}

// PlaysClient is the backend surface consumed by the feed and the CLI.
type PlaysClient interface {
	// ListPlays returns the plays matching filter, newest first.
	ListPlays(ctx context.Context, filter models.FilterSelection) ([]models.Play, error)

	// ForYou returns the recommended feed.
	ForYou(ctx context.Context) ([]models.Play, error)

	// VideoOfDay returns the featured play.
	VideoOfDay(ctx context.Context) (*models.Play, error)

	// Playbook returns the caller's saved plays matching filter.
	Playbook(ctx context.Context, filter models.FilterSelection) (*models.Playbook, error)

	// SavePlay adds a play to the caller's playbook.
	SavePlay(ctx context.Context, playID string) error

	// CreatePlay uploads a new clip.
	CreatePlay(ctx context.Context, play models.NewPlay) (*models.Play, error)
}

// AuthResult is the payload returned by login and registration.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
