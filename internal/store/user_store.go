package store

import (
	"context"
	"crypto/subtle"
	"time"

	"account/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return translate(u.db.WithContext(ctx).Create(usr).Error)
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) UpdatePassword(ctx context.Context, email, hash string) error {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SetToken replaces any outstanding single-use token for email.
func (u *UserStore) SetToken(ctx context.Context, email, token string, expiresAt time.Time) (*domain.User, error) {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(map[string]any{"token": token, "token_expires_at": expiresAt, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return u.GetByEmail(ctx, email)
}

// ConsumeToken checks token against the outstanding one for email and, if it matches and has not
// expired, clears it and applies updates in the same statement. The conditional update makes
// concurrent consumers race on the row: at most one of them wins.
func (u *UserStore) ConsumeToken(ctx context.Context, email, token string, now time.Time, updates map[string]any) (*domain.User, error) {
	user, err := u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Token == nil || subtle.ConstantTimeCompare([]byte(*user.Token), []byte(token)) != 1 {
		return nil, domain.ErrTokenMismatch
	}
	if user.TokenExpiresAt == nil || !now.Before(*user.TokenExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	set := map[string]any{"token": nil, "token_expires_at": nil, "updated_at": now}
	for k, v := range updates {
		set[k] = v
	}
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND token = ?", user.ID, token).
		Updates(set)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrTokenMismatch
	}
	return u.GetByEmail(ctx, email)
}
