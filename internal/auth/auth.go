// Package auth registers and logs in users against the remote users
// collection.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/errs"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/remote"
)

const (
	MinUsernameLen = 2
	MaxUsernameLen = 20
	MinPasswordLen = 4
)

// Service checks and creates credentials.
type Service struct {
	users remote.UserStore
	now   func() time.Time
	log   *zap.Logger
}

// NewService returns a Service over users.
func NewService(users remote.UserStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, now: time.Now, log: log}
}

// Validate trims and checks the credentials.
func Validate(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		return "", "", fmt.Errorf("%w: username is required", errs.ErrValidation)
	case n < MinUsernameLen:
		return "", "", fmt.Errorf("%w: username must be at least %d characters", errs.ErrValidation, MinUsernameLen)
	case n > MaxUsernameLen:
		return "", "", fmt.Errorf("%w: username must be at most %d characters", errs.ErrValidation, MaxUsernameLen)
	}
	switch n := utf8.RuneCountInString(password); {
	case n == 0:
		return "", "", fmt.Errorf("%w: password is required", errs.ErrValidation)
	case n < MinPasswordLen:
		return "", "", fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLen)
	}
	return username, password, nil
}

// FindUser returns the user whose credentials match. A missing user and a
// wrong password look the same to the caller.
func (s *Service) FindUser(ctx context.Context, username, password string) (*model.User, error) {
	username, password, err := Validate(username, password)
	if err != nil {
		return nil, err
	}
	all, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range all {
		if all[i].Username != username {
			continue
		}
		if VerifyPassword(password, all[i].Password) {
			u := all[i]
			s.log.Info("login", zap.String("username", username), zap.String("user_id", u.ID))
			return &u, nil
		}
	}
	s.log.Info("login rejected", zap.String("username", username))
	return nil, errs.ErrUnauthorized
}

// CreateUser registers a new account with a hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	username, password, err := Validate(username, password)
	if err != nil {
		return nil, err
	}
	all, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range all {
		if u.Username == username {
			return nil, fmt.Errorf("%w: username %q", errs.ErrAlreadyExists, username)
		}
	}
	encoded, err := EncodePassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	created, err := s.users.CreateUser(ctx, model.User{
		Username:  username,
		Password:  encoded,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("registered", zap.String("username", username), zap.String("user_id", created.ID))
	return &created, nil
}
