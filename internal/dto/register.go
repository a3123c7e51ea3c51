package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// reCAPTCHA response token produced by the browser widget.
	Response string `json:"response"`
}
