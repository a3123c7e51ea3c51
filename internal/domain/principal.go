package domain

// Principal is the caller identity carried by a verified access token.
type Principal struct {
	UserID      string `json:"id"`
	Email       string `json:"email"`
	APIKey      string `json:"apikey"`
	IsActivated bool   `json:"isActivated"`
}
