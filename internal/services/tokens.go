package services

import (
	"fmt"

	"github.com/desertthunder/huddle/internal/shared"
	"golang.org/x/oauth2"
)

// sessionTokenSource adapts a [Session] to [oauth2.TokenSource].
//
// The token is read on every request so a login or logout takes effect immediately.
type sessionTokenSource struct {
	session Session
}

func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	if s.session == nil {
		return nil, shared.ErrNotAuthenticated
	}

	tok, err := s.session.Token()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrNotAuthenticated)
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// StaticSession is a [Session] holding a fixed token.
//
// Useful for one-shot requests right after login, before the token is persisted.
type StaticSession struct {
	AccessToken string
	Rejected    bool
}

func (s *StaticSession) Token() (string, error) {
	if s.AccessToken == "" {
		return "", shared.ErrNotAuthenticated
	}
	return s.AccessToken, nil
}

func (s *StaticSession) OnUnauthorized() { s.Rejected = true }
