package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/huddle/internal/services"
	"github.com/desertthunder/huddle/internal/shared"
	"github.com/desertthunder/huddle/internal/ui"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges email and password for a token and stores the session.
//
// Missing credentials are collected with an interactive form.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	creds := ui.Credentials{Email: cmd.String("email"), Password: cmd.String("password")}
	if creds.Email == "" || creds.Password == "" {
		if err := ui.NewLoginForm(&creds).RunWithContext(ctx); err != nil {
			return fmt.Errorf("login cancelled: %w", err)
		}
	}

	api, err := r.client()
	if err != nil {
		return err
	}

	r.logger.Info("logging in", "email", creds.Email)
	result, err := api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}
	return r.storeSession(result)
}

// AuthRegister creates an account, then stores its session like [Runner.AuthLogin].
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	creds := ui.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
		Username: cmd.String("username"),
	}
	if creds.Email == "" || creds.Password == "" || creds.Username == "" {
		if err := ui.NewRegisterForm(&creds).RunWithContext(ctx); err != nil {
			return fmt.Errorf("registration cancelled: %w", err)
		}
	}

	api, err := r.client()
	if err != nil {
		return err
	}

	r.logger.Info("registering", "email", creds.Email, "username", creds.Username)
	result, err := api.Register(ctx, creds.Email, creds.Password, creds.Username)
	if err != nil {
		return err
	}
	return r.storeSession(result)
}

func (r *Runner) storeSession(result *services.AuthResult) error {
	if _, err := r.sessions.Save(result.Token, result.User); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	name := result.User.Username
	if name == "" {
		name = result.User.Email
	}
	r.logger.Debug("session stored", "user", result.User.ID)
	return r.writePlain("✓ Logged in as %s\n", name)
}

// AuthLogout forgets the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.store(); err != nil {
		return err
	}
	if err := r.sessions.Clear(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthProfile changes the signed-in user's username and email.
//
// Omitted fields are prompted for, pre-filled from the stored session.
func (r *Runner) AuthProfile(ctx context.Context, cmd *cli.Command) error {
	api, err := r.client()
	if err != nil {
		return err
	}

	rec, err := r.sessions.Current()
	if err != nil {
		return err
	}

	creds := ui.Credentials{Username: cmd.String("username"), Email: cmd.String("email")}
	if creds.Username == "" || creds.Email == "" {
		if creds.Username == "" {
			creds.Username = rec.User.Username
		}
		if creds.Email == "" {
			creds.Email = rec.User.Email
		}
		if err := ui.NewProfileForm(&creds).RunWithContext(ctx); err != nil {
			return fmt.Errorf("profile update cancelled: %w", err)
		}
	}

	r.logger.Info("updating profile", "username", creds.Username, "email", creds.Email)
	user, err := api.UpdateProfile(ctx, creds.Username, creds.Email)
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = rec.User.ID
	}
	if err := r.sessions.UpdateUser(*user); err != nil {
		return fmt.Errorf("failed to refresh stored session: %w", err)
	}
	return r.writePlain("✓ Profile updated: %s <%s>\n", user.Username, user.Email)
}

type authStatus struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// AuthStatus reports the stored session and confirms it with the backend's profile endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	api, err := r.client()
	if err != nil {
		return err
	}

	status := authStatus{}
	rec, err := r.sessions.Current()
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
	case err != nil:
		return err
	default:
		user, err := api.Profile(ctx)
		switch {
		case errors.Is(err, shared.ErrNotAuthenticated):
		case err != nil:
			r.logger.Warn("could not reach the backend, showing stored session", "error", err)
			status = authStatus{true, rec.User.Username, rec.User.Email, rec.ExpiresAt.Format("2006-01-02 15:04")}
		default:
			status = authStatus{true, user.Username, user.Email, rec.ExpiresAt.Format("2006-01-02 15:04")}
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	if !status.Authenticated {
		return r.writePlain("✗ Not logged in\nRun `huddle auth login` to sign in\n")
	}
	r.writePlain("✓ Logged in as %s\n", status.Username)
	if status.Email != "" {
		r.writePlain("Email: %s\n", status.Email)
	}
	return r.writePlain("Session expires: %s\n", status.ExpiresAt)
}
