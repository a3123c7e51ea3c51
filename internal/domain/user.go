package domain

import "time"

type User struct {
	ID          UserID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string `gorm:"uniqueIndex:ux_users_email;not null" json:"email"`
	APIKey      string `gorm:"uniqueIndex:ux_users_apikey;not null" json:"apikey"`
	IsActivated bool   `gorm:"not null;default:false" json:"isActivated"`

	// PHC-encoded argon2id hash.
	PasswordHash string `gorm:"not null" json:"-"`

	// Single-use token shared by email activation and password reset.
	Token          *string    `gorm:"index" json:"-"`
	TokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Principal returns the session snapshot embedded in access tokens.
func (u *User) Principal() Principal {
	return Principal{
		UserID:      u.ID.String(),
		Email:       u.Email,
		APIKey:      u.APIKey,
		IsActivated: u.IsActivated,
	}
}
