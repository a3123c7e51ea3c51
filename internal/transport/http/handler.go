package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"account/internal/authz"
	"account/internal/domain"
	"account/internal/dto"
	"account/internal/netutil"
	obsmw "account/internal/observability/middleware"
	"account/internal/service"

	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// Links holds what is needed to build the deep links sent by email.
type Links struct {
	Host          string
	BasePath      string
	LoginRedirect string
}

func (l Links) activation(email, token string) string {
	return "https://" + l.Host + l.BasePath + "/validate?email=" + url.QueryEscape(email) + "&token=" + token
}

func (l Links) passwordReset(email, token string) string {
	return "https://" + l.Host + "/password-reset?email=" + url.QueryEscape(email) + "&token=" + token
}

// Handler serves the account routes. Body-level failures are reported as 200 {"error": msg}.
type Handler struct {
	Users   service.UserService
	Devices service.DeviceService
	Factory service.FactoryCatalog
	Emails  service.EmailService
	Captcha service.CaptchaVerifier
	Tokens  service.TokenService
	Events  service.EventPublisher
	Links   Links

	// NewToken mints activation/reset tokens; defaults to a random uuid.
	NewToken func() string
}

func (h *Handler) newToken() string {
	if h.NewToken != nil {
		return h.NewToken()
	}
	return uuid.NewString()
}

func (h *Handler) logger(r *http.Request) *slog.Logger {
	return slog.Default().With(
		"request_id", obsmw.RequestIDFromContext(r.Context()),
		"trace_id", obsmw.TraceIDFromContext(r.Context()),
		"client_ip", netutil.ClientIP(r),
		"user_agent", netutil.TruncateUserAgent(r.UserAgent()),
	)
}

// principal is only called on routes behind authz.VerifyToken.
func principal(r *http.Request) *domain.Principal {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		return &domain.Principal{}
	}
	return p
}

// decode reads a JSON body into T. Malformed bodies and mistyped fields yield the zero value,
// so they fall through to the same validation message as missing fields.
func decode[T any](r *http.Request) T {
	var v T
	if r.Body == nil {
		return v
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&v); err != nil {
		var zero T
		return zero
	}
	return v
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, dto.ErrorResponse{Error: msg})
}

func writeText(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, msg)
}

// issue answers a successful login-type flow with a fresh access token.
func (h *Handler) issue(w http.ResponseWriter, r *http.Request, user *domain.User) {
	token, err := h.Tokens.Sign(user)
	if err != nil {
		h.logger(r).Error("sign access token", "error", err)
		writeError(w, msgIssueTokenFailed)
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{JWT: token, User: user})
}
