package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"evently/internal/delivery/http/controllers"
	h "evently/internal/delivery/http/helpers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
	"evently/internal/metrics"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Logger    *slog.Logger
	Auth      *controllers.AuthController
	Events    *controllers.EventController
	Attendees *controllers.AttendeeController

	Verifier domain.TokenVerifier
	Users    middleware.UserLookup
	// AuthLimiter throttles the credential endpoints per client IP. Nil disables it.
	AuthLimiter *middleware.RateLimiter

	UploadsDir     string
	AllowedOrigins []string
	// TrustProxy resolves the client address from proxy headers. Without it the
	// rate limiter keys on the connection's RemoteAddr.
	TrustProxy bool
	DB         Pinger
}

// NewRouter initializes the HTTP router with all application routes and the global middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(cfg.Verifier, cfg.Users, cfg.Logger)
	organizer := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleOrganizer)(next))
	}
	limited := func(next http.HandlerFunc) http.HandlerFunc {
		if cfg.AuthLimiter == nil {
			return next
		}
		return cfg.AuthLimiter.Limit(next)
	}

	// Auth
	mux.HandleFunc("POST /auth/register", limited(cfg.Auth.Register))
	mux.HandleFunc("POST /auth/login", limited(cfg.Auth.Login))
	mux.HandleFunc("POST /auth/forgot-password", limited(cfg.Auth.ForgotPassword))
	mux.HandleFunc("POST /auth/reset-password", limited(cfg.Auth.ResetPassword))
	mux.HandleFunc("GET /auth/me", auth(cfg.Auth.Me))
	mux.HandleFunc("PUT /auth/change-role/{userId}", organizer(cfg.Auth.ChangeRole))

	// Events
	mux.HandleFunc("POST /events/create", organizer(cfg.Events.Create))
	mux.HandleFunc("GET /events", cfg.Events.List)
	mux.HandleFunc("GET /events/{id}", cfg.Events.GetByID)
	mux.HandleFunc("PUT /events/{id}", organizer(cfg.Events.Update))
	mux.HandleFunc("DELETE /events/{id}", organizer(cfg.Events.Delete))

	// Attendance
	mux.HandleFunc("POST /events/{id}/register", auth(cfg.Attendees.RegisterForEvent))
	mux.HandleFunc("DELETE /events/{id}/unregister", auth(cfg.Attendees.UnregisterFromEvent))
	mux.HandleFunc("GET /users/me/registrations", auth(cfg.Attendees.ListMyRegisteredEvents))

	// Uploaded images
	if cfg.UploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(cfg.UploadsDir)))))
	}

	// Ops
	mux.HandleFunc("GET /healthz", healthz(cfg.DB))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Unknown routes get the JSON error shape instead of the mux's plain text.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSONError(w, http.StatusNotFound, domain.KindNotFound.String(), "Route not found")
	})

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = chimw.Recoverer(handler)
	if cfg.TrustProxy {
		handler = chimw.RealIP(handler)
	}
	handler = chimw.RequestID(handler)
	return handler
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				h.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		h.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
