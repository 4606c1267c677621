package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

// LikeRepository persists likes locally.
type LikeRepository struct {
	db *sql.DB
}

// NewLikeRepository creates a [LikeRepository] with the given database connection
func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Set records an explicit like or unlike of playID. An unlike overrides a backend "liked" flag.
func (r *LikeRepository) Set(playID string, liked bool) error {
	if playID == "" {
		return fmt.Errorf("%w: play id", shared.ErrMissingArgument)
	}

	query := `
		INSERT INTO likes (id, play_id, liked, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (play_id) DO UPDATE SET liked = excluded.liked, created_at = excluded.created_at
	`
	if _, err := r.db.Exec(query, shared.GenerateID(), playID, liked, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store like: %w", err)
	}
	return nil
}

// Toggle flips the local like state of playID and returns the new state.
func (r *LikeRepository) Toggle(playID string) (bool, error) {
	if playID == "" {
		return false, fmt.Errorf("%w: play id", shared.ErrMissingArgument)
	}

	liked, err := r.IsLiked(playID)
	if err != nil {
		return false, err
	}
	if err := r.Set(playID, !liked); err != nil {
		return false, err
	}
	return !liked, nil
}

// IsLiked reports whether playID has a local like.
func (r *LikeRepository) IsLiked(playID string) (bool, error) {
	var liked bool
	err := r.db.QueryRow(`SELECT liked FROM likes WHERE play_id = ?`, playID).Scan(&liked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query like: %w", err)
	}
	return liked, nil
}

// List returns liked play ids, most recent first.
func (r *LikeRepository) List() ([]string, error) {
	rows, err := r.db.Query(`SELECT play_id FROM likes WHERE liked = 1 ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}
	return ids, nil
}

// Annotate applies local like state to plays. Plays without a local record keep the backend flag.
func (r *LikeRepository) Annotate(plays []models.Play) error {
	rows, err := r.db.Query(`SELECT play_id, liked FROM likes`)
	if err != nil {
		return fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	state := map[string]bool{}
	for rows.Next() {
		var (
			id    string
			liked bool
		)
		if err := rows.Scan(&id, &liked); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		state[id] = liked
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating likes: %w", err)
	}

	for i := range plays {
		if liked, ok := state[plays[i].ID]; ok {
			plays[i].Liked = liked
		}
	}
	return nil
}
