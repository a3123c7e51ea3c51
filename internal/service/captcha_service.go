package service

import (
	"context"
	"errors"
)

var ErrCaptchaRejected = errors.New("captcha rejected")

type CaptchaVerifier interface {
	// Verify returns ErrCaptchaRejected when the verifier answered success=false.
	Verify(ctx context.Context, response string) error
}
