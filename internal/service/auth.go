package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/atinyakov/exhibition/internal/models"
	"github.com/atinyakov/exhibition/internal/session"
)

// AuthService checks admin credentials and issues session tokens.
type AuthService struct {
	username string
	password string
	codec    session.Codec
}

// NewAuthService constructs an AuthService for the configured admin account.
func NewAuthService(username, password string, codec session.Codec) *AuthService {
	return &AuthService{username: username, password: password, codec: codec}
}

// Login returns a session token for valid credentials, or
// models.ErrInvalidCredentials.
func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", models.ErrInvalidCredentials
	}

	token, err := s.codec.Encode(models.Identity{Username: username, IsAuthenticated: true})
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return token, nil
}
