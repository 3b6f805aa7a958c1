package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wcraske/simpleCalendar/internal/apperr"
	"github.com/wcraske/simpleCalendar/internal/auth"
	"github.com/wcraske/simpleCalendar/internal/config"
	"github.com/wcraske/simpleCalendar/internal/logger"
	"github.com/wcraske/simpleCalendar/internal/metrics"
	"github.com/wcraske/simpleCalendar/internal/models"
	"github.com/wcraske/simpleCalendar/internal/policy"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
	"github.com/wcraske/simpleCalendar/internal/validate"
)

const (
	minCredentialLen = 3
	maxCredentialLen = 16
)

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type UserService struct {
	store repo.Store
	tm    *auth.TokenManager
	c     config.Config
}

func NewUserService(store repo.Store, tm *auth.TokenManager, c config.Config) *UserService {
	return &UserService{store: store, tm: tm, c: c}
}

func (s *UserService) issue(username string) (Token, error) {
	tok, exp, err := s.tm.Issue(username)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: tok, ExpiresAt: exp}, nil
}

// Register creates a regular user and logs them in. The role is always "user".
func (s *UserService) Register(ctx context.Context, username, password string) (models.User, Token, error) {
	l := logger.FromContext(ctx).With("svc", "user.register", "username", username)

	if err := validate.Collect(
		validate.Required("username", username),
		validate.Length("username", username, minCredentialLen, maxCredentialLen),
		validate.Length("password", password, minCredentialLen, maxCredentialLen),
	); err != nil {
		metrics.LoginsTotal.WithLabelValues("register", metrics.Result(false)).Inc()
		return models.User{}, Token{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, Token{}, fmt.Errorf("hash password: %w", err)
	}

	var u models.User
	err = s.store.WithTx(ctx, func(r repo.Repositories) error {
		_, err := r.Users.GetByUsername(ctx, username)
		switch {
		case err == nil:
			return ErrUsernameTaken
		case !errors.Is(err, repo.ErrNotFound):
			return err
		}
		u, err = r.Users.Create(ctx, username, hash, models.RoleUser)
		if errors.Is(err, repo.ErrConflict) {
			return ErrUsernameTaken
		}
		return err
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("register", metrics.Result(false)).Inc()
		if errors.Is(err, ErrUsernameTaken) {
			l.Warn("register rejected", "reason", "username taken")
		}
		return models.User{}, Token{}, err
	}

	tok, err := s.issue(u.Username)
	if err != nil {
		return models.User{}, Token{}, err
	}
	metrics.LoginsTotal.WithLabelValues("register", metrics.Result(true)).Inc()
	l.Info("user registered", "user_id", u.ID)
	return u, tok, nil
}

// Login checks the credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, username, password string) (Token, error) {
	l := logger.FromContext(ctx).With("svc", "user.login", "username", username)

	var u models.User
	err := s.store.WithTx(ctx, func(r repo.Repositories) error {
		var err error
		u, err = r.Users.GetByUsername(ctx, username)
		return err
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		err = ErrInvalidCredentials
	case err == nil && !auth.VerifyPassword(password, u.PasswordHash):
		err = ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("login", metrics.Result(false)).Inc()
		if errors.Is(err, ErrInvalidCredentials) {
			l.Warn("login failed", "reason", "invalid credentials")
		}
		return Token{}, err
	}

	metrics.LoginsTotal.WithLabelValues("login", metrics.Result(true)).Inc()
	return s.issue(u.Username)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := s.tm.Parse(token)
	if err != nil {
		metrics.TokenRejections.Inc()
		return models.User{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	var u models.User
	err = s.store.WithTx(ctx, func(r repo.Repositories) error {
		var err error
		u, err = r.Users.GetByUsername(ctx, claims.Subject)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		metrics.TokenRejections.Inc()
		return models.User{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, auth.ErrUnknownSubject)
	}
	return u, err
}

// EnsureAdmin creates the bootstrap admin account when it is missing. It is
// safe to call on every start.
func (s *UserService) EnsureAdmin(ctx context.Context) error {
	return s.store.WithTx(ctx, func(r repo.Repositories) error {
		_, err := r.Users.GetByUsername(ctx, s.c.AdminUsername)
		if err == nil || !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		hash, err := auth.HashPassword(s.c.AdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		u, err := r.Users.Create(ctx, s.c.AdminUsername, hash, models.RoleAdmin)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Info("bootstrap admin created", "username", u.Username)
		return nil
	})
}

func (s *UserService) List(ctx context.Context, actor models.User) ([]models.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	var out []models.User
	err := s.store.WithTx(ctx, func(r repo.Repositories) error {
		var err error
		out, err = r.Users.List(ctx)
		return err
	})
	return out, err
}

// Delete removes a user together with every event they own.
func (s *UserService) Delete(ctx context.Context, actor models.User, id string) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	if id == actor.ID {
		return fmt.Errorf("%w: cannot delete your own account", apperr.ErrBadRequest)
	}
	err := s.store.WithTx(ctx, func(r repo.Repositories) error {
		return r.Users.Delete(ctx, id)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		logger.FromContext(ctx).Info("user deleted", "user_id", id, "by", actor.ID)
	}
	return err
}
