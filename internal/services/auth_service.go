package services

import (
	"context"
	"errors"
	"strings"

	"ledger-backend/internal/logger"
	"ledger-backend/internal/models"
	"ledger-backend/internal/session"
)

// TokenIssuer signs API tokens for a session.
type TokenIssuer interface {
	GenerateToken(s session.Session) (string, error)
}

type AuthService struct {
	Users  UserStore
	Tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Login looks the username up. There is no password; an unknown username
// returns ErrUserNotFound.
func (s *AuthService) Login(ctx context.Context, username string) (*models.AuthResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Message: "Please enter a username."}
	}

	user, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		logger.Log.Infow("[Auth] unknown username", "username", username)
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	sess := session.Session{Username: user.Username, Name: user.Name, Role: session.ParseRole(user.Type)}
	token, err := s.Tokens.GenerateToken(sess)
	if err != nil {
		return nil, err
	}

	logger.Log.Infow("[Auth] login", "username", sess.Username, "role", sess.Role.String())
	return &models.AuthResponse{
		Token:    token,
		Username: sess.Username,
		Name:     sess.Name,
		Role:     sess.Role.String(),
	}, nil
}
