package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"account/internal/domain"
	"account/internal/dto"
	"account/internal/observability/metrics"
	"account/internal/service"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.RegisterRequest](r)
	if blank(req.Email) || req.Password == "" {
		writeError(w, msgEmailPasswordEmpty)
		return
	}
	if req.Response == "" {
		writeError(w, msgCaptchaRequired)
		return
	}
	log := h.logger(r)

	if err := h.Captcha.Verify(r.Context(), req.Response); err != nil {
		metrics.AuthRegistrationsTotal.WithLabelValues("captcha_failed").Inc()
		if errors.Is(err, service.ErrCaptchaRejected) {
			writeError(w, msgCaptchaFailed)
			return
		}
		log.Warn("captcha verification unavailable", "error", err)
		writeError(w, msgCaptchaUnavailable)
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthRegistrationsTotal.WithLabelValues("failure").Inc()
		if !errors.Is(err, domain.ErrEmailExists) {
			log.Error("register user", "error", err)
		}
		writeError(w, msgEmailExists)
		return
	}
	metrics.AuthRegistrationsTotal.WithLabelValues("success").Inc()
	log.Info("user registered", "user_id", user.ID.String())

	if msg := h.sendActivation(r.Context(), log, user.Email); msg != "" {
		writeError(w, msg)
		return
	}
	h.issue(w, r, user)
}

// sendActivation replaces the outstanding token for email and mails the new link.
// It returns a user-facing message on failure.
func (h *Handler) sendActivation(ctx context.Context, log *slog.Logger, email string) string {
	token := h.newToken()
	user, err := h.Users.ResetToken(ctx, email, token)
	if err != nil {
		log.Error("reset activation token", "error", err)
		return msgResetTokenFailed
	}
	if err := h.Emails.SendActivation(ctx, user.Email, h.Links.activation(user.Email, token)); err != nil {
		log.Error("send activation email", "error", err)
		return msgSendMailFailed
	}
	return ""
}

func (h *Handler) activeAccount(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if msg := h.sendActivation(r.Context(), h.logger(r), p.Email); msg != "" {
		writeError(w, msg)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: msgResetTokenSuccess})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	token := r.URL.Query().Get("token")
	if email == "" || token == "" {
		writeError(w, msgEmailTokenEmpty)
		return
	}
	user, msg, err := h.Users.Activate(r.Context(), email, token)
	if err != nil {
		h.logger(r).Error("activate account", "error", err)
		writeError(w, msgActivationFailed)
		return
	}
	if user == nil {
		writeText(w, msg)
		return
	}
	h.logger(r).Info("account activated", "user_id", user.ID.String())
	http.Redirect(w, r, h.Links.LoginRedirect, http.StatusFound)
}

func (h *Handler) passwordResetEmail(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.PasswordResetEmailRequest](r)
	if blank(req.Email) {
		writeError(w, msgEmailEmpty)
		return
	}
	log := h.logger(r)

	token := h.newToken()
	user, err := h.Users.ResetToken(r.Context(), req.Email, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// same answer as a known address
			metrics.PasswordResetsTotal.WithLabelValues("request", "unknown_email").Inc()
			log.Info("password reset requested for unknown email")
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		metrics.PasswordResetsTotal.WithLabelValues("request", "failure").Inc()
		log.Error("reset password token", "error", err)
		writeError(w, msgResetTokenFailed)
		return
	}
	if err := h.Emails.SendPasswordReset(r.Context(), user.Email, h.Links.passwordReset(user.Email, token)); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("request", "failure").Inc()
		log.Error("send password reset email", "error", err)
		writeError(w, msgSendMailFailed)
		return
	}
	metrics.PasswordResetsTotal.WithLabelValues("request", "success").Inc()
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) passwordReset(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.PasswordResetRequest](r)
	if blank(req.Email) || req.Token == "" || blank(req.Password) {
		writeError(w, msgResetFieldsEmpty)
		return
	}
	user, err := h.Users.ResetPassword(r.Context(), req.Email, req.Password, req.Token)
	metrics.PasswordResetsTotal.WithLabelValues("complete", metrics.Result(err)).Inc()
	if err != nil {
		if errors.Is(err, domain.ErrTokenMismatch) || errors.Is(err, domain.ErrTokenExpired) {
			writeError(w, msgResetLinkInvalid)
			return
		}
		h.logger(r).Error("reset password", "error", err)
		writeError(w, msgResetPasswordFailed)
		return
	}
	h.issue(w, r, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.LoginRequest](r)
	if blank(req.Email) || req.Password == "" {
		writeError(w, msgEmailPasswordEmpty)
		return
	}
	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	metrics.AuthLoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger(r).Error("authenticate", "error", err)
		}
		writeError(w, msgLoginIncorrect)
		return
	}
	h.issue(w, r, user)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.ChangePasswordRequest](r)
	if blank(req.OldPassword) || blank(req.NewPassword) {
		writeError(w, msgPasswordsEmpty)
		return
	}
	p := principal(r)
	log := h.logger(r)

	if _, err := h.Users.Authenticate(r.Context(), p.Email, req.OldPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, msgOldPasswordIncorrect)
			return
		}
		log.Error("re-authenticate for password change", "error", err)
		writeError(w, msgChangePasswordFailed)
		return
	}
	if err := h.Users.SetPassword(r.Context(), p.Email, req.NewPassword); err != nil {
		log.Error("set password", "error", err)
		writeError(w, msgChangePasswordFailed)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
