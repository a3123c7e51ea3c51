package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"account/internal/domain"
	"account/internal/observability/metrics"
	"account/internal/service"
)

var _ service.CaptchaVerifier = (*Client)(nil)

// Client verifies reCAPTCHA responses against the siteverify endpoint.
type Client struct {
	verifyURL string
	secret    string
	http      *http.Client
}

func NewClient(verifyURL, secret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		verifyURL: strings.TrimSpace(verifyURL),
		secret:    secret,
		http:      &http.Client{Timeout: timeout},
	}
}

// Verify returns service.ErrCaptchaRejected when the verifier answered success=false and an
// error wrapping domain.ErrUpstream when it could not be asked or its answer could not be read.
func (c *Client) Verify(ctx context.Context, response string) (err error) {
	defer func() {
		result := "success"
		switch {
		case err == nil:
		case errors.Is(err, service.ErrCaptchaRejected):
			result = "rejected"
		default:
			result = "error"
		}
		metrics.CaptchaVerificationsTotal.WithLabelValues(result).Inc()
	}()

	u, err := url.Parse(c.verifyURL)
	if err != nil {
		return fmt.Errorf("%w: captcha url: %w", domain.ErrUpstream, err)
	}
	q := u.Query()
	q.Set("secret", c.secret)
	q.Set("response", response)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: decode captcha response (%s): %w", domain.ErrUpstream, resp.Status, err)
	}
	if !body.Success {
		return service.ErrCaptchaRejected
	}
	return nil
}
