package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/izzyreal/raincast/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrEmailTaken         = errors.New("Email already exists")
)

// UserStore is the part of store.Store the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (store.User, error)
	UserByUsername(ctx context.Context, username string) (store.User, error)
	TouchLogin(ctx context.Context, id string) error
}

type Service struct {
	users  UserStore
	tokens *Tokens
}

func NewService(users UserStore, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

// Tokens returns the session token issuer shared with the HTTP middleware.
func (s *Service) Tokens() *Tokens {
	return s.tokens
}

type Signup struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates an account. Error values are user-facing messages.
func (s *Service) Register(ctx context.Context, in Signup) (store.User, error) {
	if in.Password != in.ConfirmPassword {
		return store.User{}, ErrPasswordMismatch
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.CreateUser(ctx, strings.TrimSpace(in.Username), strings.TrimSpace(in.Email), hash)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return store.User{}, ErrUsernameTaken
	case errors.Is(err, store.ErrEmailTaken):
		return store.User{}, ErrEmailTaken
	case err != nil:
		return store.User{}, err
	}
	slog.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Login checks credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, username, password string) (store.User, string, error) {
	u, err := s.users.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return store.User{}, "", err
	}
	if !CheckPasswordHash(password, u.PasswordHash) {
		return store.User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return store.User{}, "", err
	}
	if err := s.users.TouchLogin(ctx, u.ID); err != nil {
		slog.Warn("record login time failed", "user_id", u.ID, "error", err)
	}
	return u, token, nil
}
