package authz

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"account/internal/domain"
	"account/internal/observability/metrics"
	obsmw "account/internal/observability/middleware"
	"account/internal/service"
)

const (
	msgNoToken      = "No authorization token was found"
	msgInvalidToken = "Invalid token"
	msgNotActivated = "Activated Account only area!"
)

type principalKey struct{}

func ContextWithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the session principal attached by VerifyToken.
func PrincipalFrom(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*domain.Principal)
	return p, ok && p != nil
}

// VerifyToken requires a valid bearer access token on every path outside public.
func VerifyToken(tokens service.TokenService, public PathSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.Contains(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			reqID := obsmw.RequestIDFromContext(r.Context())

			raw := r.Header.Get("Authorization")
			if len(raw) < len("Bearer ") || !strings.EqualFold(raw[:len("Bearer ")], "bearer ") {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				slog.Warn("auth missing bearer", "path", r.URL.Path, "request_id", reqID)
				unauthorized(w, msgNoToken)
				return
			}
			principal, err := tokens.Verify(strings.TrimSpace(raw[len("Bearer "):]))
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				slog.Warn("auth invalid token", "path", r.URL.Path, "error", err, "request_id", reqID)
				unauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireActivated rejects principals whose account is not activated, outside allowed.
func RequireActivated(allowed PathSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowed.Contains(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			p, ok := PrincipalFrom(r.Context())
			if !ok || !p.IsActivated {
				metrics.AuthRejectionsTotal.WithLabelValues("not_activated").Inc()
				unauthorized(w, msgNotActivated)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
