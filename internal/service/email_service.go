package service

import (
	"context"

	"account/internal/domain"
)

type EmailService interface {
	SendActivation(ctx context.Context, to string, link string) error
	SendPasswordReset(ctx context.Context, to string, link string) error
}

// Mailer delivers an already rendered message.
type Mailer interface {
	SendMail(ctx context.Context, m domain.Mail) error
}
