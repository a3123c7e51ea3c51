package service

import "account/internal/domain"

type TokenService interface {
	Sign(user *domain.User) (string, error)
	Verify(token string) (*domain.Principal, error)
}
