package service

import (
	"context"

	"account/internal/domain"
)

// UserService owns user records, credentials and single-use tokens.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	SetPassword(ctx context.Context, email, newPassword string) error
	ResetToken(ctx context.Context, email, token string) (*domain.User, error)
	// Activate consumes token. A rejected token yields a nil user and a user-facing message.
	Activate(ctx context.Context, email, token string) (*domain.User, string, error)
	ResetPassword(ctx context.Context, email, newPassword, token string) (*domain.User, error)
}
