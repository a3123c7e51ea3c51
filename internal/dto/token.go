package dto

import "account/internal/domain"

// AuthResponse is returned by every flow that logs the caller in.
type AuthResponse struct {
	JWT  string       `json:"jwt"`
	User *domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
