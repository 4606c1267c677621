package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

const (
	registerPath = "/api/users/register"
	loginPath    = "/api/users/login"
	profilePath  = "/api/users/profile"
	updatePath   = "/api/users/update"
)

type authResponse struct {
	Token string         `json:"token"`
	User  map[string]any `json:"user"`
}

type profileResponse struct {
	User map[string]any `json:"user"`
}

// Register creates an account and returns its first token.
func (a *APIService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingCredentials)
	}
	body := map[string]string{"email": email, "password": password, "username": username}
	return a.authenticate(ctx, registerPath, email, password, body)
}

// Login exchanges email and password for a token.
func (a *APIService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	return a.authenticate(ctx, loginPath, email, password, body)
}

func (a *APIService) authenticate(ctx context.Context, path, email, password string, body any) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}

	var resp authResponse
	if err := a.doRequest(ctx, a.public, http.MethodPost, path, nil, body, &resp); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) || errors.Is(err, shared.ErrAPIRequest) {
			return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: response carried no token", shared.ErrAuthFailed)
	}

	return &AuthResult{Token: resp.Token, User: models.NormalizeUser(resp.User)}, nil
}

// Profile returns the signed-in user.
func (a *APIService) Profile(ctx context.Context) (*models.User, error) {
	var resp profileResponse
	if err := a.get(ctx, profilePath, nil, &resp); err != nil {
		return nil, err
	}
	user := models.NormalizeUser(resp.User)
	return &user, nil
}

// UpdateProfile changes the signed-in user's username and email and returns the stored result.
func (a *APIService) UpdateProfile(ctx context.Context, username, email string) (*models.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", shared.ErrMissingCredentials)
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: %q is not an email address", shared.ErrInvalidInput, email)
	}

	var resp profileResponse
	body := map[string]string{"username": username, "email": email}
	if err := a.post(ctx, updatePath, body, &resp); err != nil {
		return nil, err
	}
	user := models.NormalizeUser(resp.User)
	return &user, nil
}

// validEmail accepts local@domain.tld with no whitespace.
func validEmail(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
