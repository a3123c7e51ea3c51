package impl

import "errors"

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrEmptyCredential = errors.New("empty credential(s)")
	ErrEmptyEmail      = errors.New("empty email")
	ErrInvalidHash     = errors.New("invalid password hash")
)
