package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrUpstream           = errors.New("upstream failure")

	ErrEmailExists    = fmt.Errorf("email exists: %w", ErrConflict)
	ErrDeviceExists   = fmt.Errorf("device exists: %w", ErrConflict)
	ErrUserNotFound   = fmt.Errorf("user: %w", ErrNotFound)
	ErrDeviceNotFound = fmt.Errorf("device: %w", ErrNotFound)

	ErrTokenMismatch = errors.New("token mismatch")
	ErrTokenExpired  = errors.New("token expired")
)
