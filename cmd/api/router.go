package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/crucial707/blogapi/internal/config"
	"github.com/crucial707/blogapi/internal/handlers"
	"github.com/crucial707/blogapi/internal/middleware"
	"github.com/crucial707/blogapi/internal/models"
	"github.com/crucial707/blogapi/internal/repo"
	"github.com/crucial707/blogapi/internal/sanitize"
	"github.com/crucial707/blogapi/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, handlers and middleware onto one chi router.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	secret := []byte(cfg.JWTSecret)

	userRepo := repo.NewUserRepo(db)
	blogRepo := repo.NewBlogRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	authHandler := &handlers.AuthHandler{
		Users:    userRepo,
		Secret:   secret,
		TokenTTL: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	blogHandler := &handlers.BlogHandler{
		Service:          service.NewBlogService(blogRepo, cfg.MaxPageSize),
		Users:            userRepo,
		Audit:            auditRepo,
		Sanitizer:        sanitize.New(),
		EnforceOwnership: cfg.EnforceOwnership,
	}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// ==========================
	// Probes & metrics
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	r.Handle("/metrics", promhttp.Handler())

	// ==========================
	// Auth (rate limited per IP)
	// ==========================
	limiter := middleware.AuthRateLimiter(cfg.TrustProxyHeaders)
	r.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// ==========================
	// Blog API
	// ==========================
	r.Route("/api/blog", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(secret))
			r.Post("/secure/create", blogHandler.CreateBlog)
			r.Put("/secure/update/{id}", blogHandler.UpdateBlog)
			r.Delete("/secure/delete/{id}", blogHandler.DeleteBlog)
		})

		r.Get("/public", blogHandler.ListBlogs)
		r.Get("/public/", blogHandler.ListBlogs)
		r.Get("/public/user/{id}", blogHandler.ListBlogsByUser)
	})

	// ==========================
	// Audit (ADMIN only)
	// ==========================
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(secret))
		r.Use(middleware.RequireRole(models.RoleAdmin))
		r.Get("/api/audit", auditHandler.ListAudit)
	})

	return r
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
