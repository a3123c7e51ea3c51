package impl

import (
	"errors"
	"fmt"
	"time"

	"account/internal/domain"
	"account/internal/observability/metrics"
	"account/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ service.TokenService = (*TokenServiceImpl)(nil)

type TokenConfig struct {
	Issuer     string
	AccessTTL  time.Duration
	SigningKey []byte // HS256 secret
}

// AccessClaims carries a snapshot of the principal; it is not refreshed when the user changes.
type AccessClaims struct {
	Email       string `json:"email"`
	APIKey      string `json:"apikey"`
	IsActivated bool   `json:"isActivated"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg, now: time.Now}
}

func (t *TokenServiceImpl) Sign(user *domain.User) (string, error) {
	if user == nil {
		return "", errors.New("nil user")
	}
	now := t.now().UTC()
	claims := AccessClaims{
		Email:       user.Email,
		APIKey:      user.APIKey,
		IsActivated: user.IsActivated,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
	metrics.TokensIssuedTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

func (t *TokenServiceImpl) Verify(tokenStr string) (*domain.Principal, error) {
	claims := &AccessClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !tok.Valid || claims.Email == "" {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	return &domain.Principal{
		UserID:      claims.Subject,
		Email:       claims.Email,
		APIKey:      claims.APIKey,
		IsActivated: claims.IsActivated,
	}, nil
}
