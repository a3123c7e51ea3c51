package http

import (
	"context"
	"net/http"
	"time"

	"account/internal/authz"
	obsmw "account/internal/observability/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultBasePath = "/api/user"

type RouterOptions struct {
	BasePath           string
	AllowedOrigins     []string
	RateLimitPerMinute int
	RequestTimeout     time.Duration
	// Ready backs /readyz; nil means always ready.
	Ready func(ctx context.Context) error
}

// PublicPaths are reachable without an access token.
func PublicPaths(basePath string) authz.PathSet {
	return authz.NewPathSet(
		basePath+"/register",
		basePath+"/login",
		basePath+"/validate",
		basePath+"/password-reset-email",
		basePath+"/password-reset",
	)
}

// ActivationExemptPaths are reachable by accounts that have not confirmed their email yet.
func ActivationExemptPaths(basePath string) authz.PathSet {
	return PublicPaths(basePath).Union(basePath + "/activeAccount")
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	base := opts.BasePath
	if base == "" {
		base = DefaultBasePath
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.Metrics)
	r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}
	if opts.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
	}

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route(base, func(r chi.Router) {
		r.Use(authz.VerifyToken(h.Tokens, PublicPaths(base)))
		r.Use(authz.RequireActivated(ActivationExemptPaths(base)))

		r.Post("/register", h.register)
		r.Get("/activeAccount", h.activeAccount)
		r.Get("/validate", h.validate)
		r.Post("/password-reset-email", h.passwordResetEmail)
		r.Post("/password-reset", h.passwordReset)
		r.Post("/login", h.login)
		r.Post("/password", h.changePassword)

		r.Get("/device", h.listDevices)
		r.Post("/device", h.createDevice)
		r.Post("/device/add", h.claimDevice)
		r.Get("/device/{deviceid}", h.getDevice)
		r.Post("/device/{deviceid}", h.updateDevice)
		r.Delete("/device/{deviceid}", h.deleteDevice)
	})

	return r
}
