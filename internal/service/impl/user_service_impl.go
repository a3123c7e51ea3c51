package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"account/internal/domain"
	"account/internal/service"
	"account/internal/store"

	"github.com/google/uuid"
)

var _ service.UserService = (*UserServiceImpl)(nil)

const (
	msgActivationInvalid = "Activation link is invalid!"
	msgActivationExpired = "Activation link has expired, please request a new one."
)

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, hash string) error
	SetToken(ctx context.Context, email, token string, expiresAt time.Time) (*domain.User, error)
	ConsumeToken(ctx context.Context, email, token string, now time.Time, updates map[string]any) (*domain.User, error)
}

type UserServiceImpl struct {
	Users           userStore
	PasswordService service.PasswordService
	TokenTTL        time.Duration
	now             func() time.Time
}

func NewUserServiceImpl(st *store.Store, passwordService service.PasswordService, tokenTTL time.Duration) *UserServiceImpl {
	return &UserServiceImpl{
		Users:           st.Users(),
		PasswordService: passwordService,
		TokenTTL:        tokenTTL,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredential
	}
	hash, err := s.PasswordService.Hash(password)
	if err != nil {
		return nil, err
	}
	now := s.nowTime()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		APIKey:       uuid.NewString(),
		IsActivated:  false, // stays false until the emailed token is consumed
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredential
	}
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials // don't leak which field failed
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	rehashNeeded, ok := s.PasswordService.Verify(password, user.PasswordHash)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if rehashNeeded {
		// transparent policy upgrade; the login itself already succeeded
		if hash, err := s.PasswordService.Hash(password); err == nil {
			if err := s.Users.UpdatePassword(ctx, email, hash); err != nil {
				slog.Warn("password rehash failed", "error", err)
			} else {
				user.PasswordHash = hash
			}
		}
	}
	return user, nil
}

func (s *UserServiceImpl) SetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := s.PasswordService.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, normalizeEmail(email), hash); err != nil {
		return translateUserErr(err)
	}
	return nil
}

func (s *UserServiceImpl) ResetToken(ctx context.Context, email, token string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmptyEmail
	}
	user, err := s.Users.SetToken(ctx, email, token, s.nowTime().Add(s.TokenTTL))
	if err != nil {
		return nil, translateUserErr(err)
	}
	return user, nil
}

func (s *UserServiceImpl) Activate(ctx context.Context, email, token string) (*domain.User, string, error) {
	user, err := s.Users.ConsumeToken(ctx, normalizeEmail(email), token, s.nowTime(), map[string]any{"is_activated": true})
	switch {
	case err == nil:
		return user, "", nil
	case errors.Is(err, domain.ErrTokenExpired):
		return nil, msgActivationExpired, nil
	case errors.Is(err, domain.ErrTokenMismatch), errors.Is(err, store.ErrRecordNotFound):
		return nil, msgActivationInvalid, nil
	}
	return nil, "", fmt.Errorf("activate user: %w", err)
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, email, newPassword, token string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || token == "" {
		return nil, ErrEmptyCredential
	}
	hash, err := s.PasswordService.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.ConsumeToken(ctx, email, token, s.nowTime(), map[string]any{"password_hash": hash})
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrTokenMismatch
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) nowTime() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func translateUserErr(err error) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
