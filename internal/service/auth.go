package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/fashion_api/internal/hash"
	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/models"
	"github.com/Skotchmaster/fashion_api/internal/mykafka"
	"github.com/Skotchmaster/fashion_api/internal/repo"
	"github.com/Skotchmaster/fashion_api/internal/tokens"
)

const (
	MinPasswordLen = 6
	// bcrypt refuses longer input
	MaxPasswordBytes = 72
)

// burnHash keeps unknown-user logins as slow as wrong-password ones.
var burnHash = hash.CheckDummy

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type TokenSigner interface {
	Sign(id tokens.Identity) (string, error)
}

type AuthService struct {
	Repo   UserStore
	Tokens TokenSigner
	Events mykafka.Publisher
}

type LoginResult struct {
	Token string
	User  *models.User
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register stores a new user with the given role. Username uniqueness is
// decided by the store.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "role", role)

	username = NormalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLen)
	}
	if len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordBytes)
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_error", "status", 409, "reason", "user already exists", "username", username)
			return nil, fmt.Errorf("user %q: %w", username, ErrConflict)
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID, "username", user.Username)
	publish(ctx, s.Events, fmt.Sprint(user.ID), mykafka.NewEvent(mykafka.EventUserRegistered, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	}))
	return user, nil
}

// Login answers ErrInvalidCredentials for both an unknown user and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = NormalizeUsername(username)
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			burnHash(password)
			l.Warn("login_failed", "status", 401, "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(tokens.Identity{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

func publish(ctx context.Context, p mykafka.Publisher, key string, ev mykafka.Event) {
	if p == nil {
		return
	}
	// the request may be cancelled as soon as the response is written
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, key, ev); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "event", ev.Type, "error", err)
	}
}
