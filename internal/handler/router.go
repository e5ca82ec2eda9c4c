package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/shared/auth"
)

// RouterConfig wires the handlers and cross-cutting policy into the HTTP
// surface.
type RouterConfig struct {
	AuthHandler    *AuthHandler
	ProjectHandler *ProjectHandler
	ContactHandler *ContactHandler
	Tokens         auth.TokenService
	AllowedOrigins []string
	Logger         *zerolog.Logger
}

// NewRouter builds the chi router with CORS, common middleware and all
// routes. Exact paths are the contract with the front end.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  allowOrigin(cfg.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	requireAuth := RequireAuth(cfg.Tokens, cfg.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", APIInfo)
		r.Get("/health", Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", cfg.AuthHandler.Me)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			// Public reads
			r.Get("/", cfg.ProjectHandler.List)
			r.Get("/{id}", cfg.ProjectHandler.Get)

			// Mutations need a bearer token
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", cfg.ProjectHandler.Create)
				r.Put("/{id}", cfg.ProjectHandler.Update)
				r.Delete("/{id}", cfg.ProjectHandler.Delete)
			})
		})

		r.Post("/contact", cfg.ContactHandler.Send)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api", http.StatusTemporaryRedirect)
	})

	r.NotFound(NotFound)

	return r
}

// allowOrigin implements the CORS policy: localhost is always fine, the
// configured allow-list matches exactly, and any https Vercel preview
// subdomain is accepted.
func allowOrigin(allowed []string) func(r *http.Request, origin string) bool {
	allowedSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedSet[origin] = true
		}
	}

	return func(_ *http.Request, origin string) bool {
		if allowedSet[origin] {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil {
			return false
		}

		if u.Hostname() == "localhost" {
			return true
		}

		return u.Scheme == "https" && strings.HasSuffix(u.Hostname(), ".vercel.app")
	}
}
