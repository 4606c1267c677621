package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

// DefaultSessionTTL matches the lifetime the backend gives its tokens.
const DefaultSessionTTL = 24 * time.Hour

// SessionRecord is a stored login.
type SessionRecord struct {
	ID        string
	Token     string
	User      models.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at t.
func (s SessionRecord) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// SessionRepository stores at most one session row.
type SessionRepository struct {
	db        *sql.DB
	ttl       time.Duration
	now       func() time.Time
	onSignOut func()
}

// NewSessionRepository creates a [SessionRepository]. A non-positive ttl falls back to [DefaultSessionTTL].
func NewSessionRepository(db *sql.DB, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRepository{db: db, ttl: ttl, now: time.Now}
}

// OnSignOut registers fn to run whenever the backend rejects the stored token.
func (r *SessionRepository) OnSignOut(fn func()) {
	r.onSignOut = fn
}

// Save replaces any stored session with a new one for user.
func (r *SessionRepository) Save(token string, user models.User) (*SessionRecord, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrMissingCredentials)
	}

	now := r.now().UTC()
	rec := &SessionRecord{
		ID:        shared.GenerateID(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return nil, fmt.Errorf("failed to clear sessions: %w", err)
	}

	query := `
		INSERT INTO sessions (id, token, user_id, username, email, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, rec.ID, rec.Token, user.ID, user.Username, user.Email, rec.CreatedAt, rec.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}
	return rec, nil
}

// Current returns the stored session. Expired sessions are removed and reported as
// [shared.ErrNotAuthenticated] wrapping [shared.ErrTokenExpired].
func (r *SessionRepository) Current() (*SessionRecord, error) {
	query := `
		SELECT id, token, user_id, username, email, created_at, expires_at
		FROM sessions
		ORDER BY created_at DESC
		LIMIT 1
	`

	var rec SessionRecord
	err := r.db.QueryRow(query).Scan(
		&rec.ID, &rec.Token, &rec.User.ID, &rec.User.Username, &rec.User.Email, &rec.CreatedAt, &rec.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no stored session", shared.ErrNotAuthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if rec.Expired(r.now()) {
		if err := r.Clear(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrTokenExpired)
	}
	return &rec, nil
}

// UpdateUser replaces the user stored with the current session, keeping its token and expiry.
func (r *SessionRepository) UpdateUser(user models.User) error {
	res, err := r.db.Exec(`UPDATE sessions SET user_id = ?, username = ?, email = ?`, user.ID, user.Username, user.Email)
	if err != nil {
		return fmt.Errorf("failed to update session user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: no stored session", shared.ErrNotAuthenticated)
	}
	return nil
}

// Token returns the stored bearer token.
func (r *SessionRepository) Token() (string, error) {
	rec, err := r.Current()
	if err != nil {
		return "", err
	}
	return rec.Token, nil
}

// OnUnauthorized signs the user out after the backend rejected the token.
func (r *SessionRepository) OnUnauthorized() {
	_ = r.Clear()
	if r.onSignOut != nil {
		r.onSignOut()
	}
}

// Clear removes every stored session.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}
