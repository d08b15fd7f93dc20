// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. It organizes routes into public, auth, and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions   *session.Store
	Posts      *handlers.Posts
	Comments   *handlers.Comments
	Newsletter *handlers.Newsletter
	Auth       *handlers.Auth
	Uploads    *handlers.Uploads

	// SecureCookies marks CSRF cookies HTTPS-only in production.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Public write endpoints share a per-IP limiter so a single client
	// can't flood the moderation queue or the subscriber list.
	publicWrites := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public reads.
		r.Get("/posts", d.Posts.ListPublished)
		r.Get("/posts/{slug}", d.Posts.GetBySlug)
		r.Get("/comments", d.Comments.ListForPost)

		// Public writes, rate limited.
		r.Group(func(r chi.Router) {
			r.Use(publicWrites.Middleware)
			r.Post("/comments", d.Comments.Submit)
			r.Post("/newsletter/subscribe", d.Newsletter.Subscribe)
		})

		// Auth. Login is rate limited; the 2FA step needs a session
		// but not a completed verification.
		r.Route("/auth", func(r chi.Router) {
			r.With(publicWrites.Middleware).Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", d.Auth.Setup2FA)
				r.Post("/2fa/verify", d.Auth.Verify2FA)
			})

			r.With(middleware.RequireAuth, middleware.Require2FA,
				middleware.NewCSRF(d.SecureCookies)).Get("/me", d.Auth.Me)
		})

		// Admin: authenticated, 2FA-verified, CSRF-protected.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.NewCSRF(d.SecureCookies))

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", d.Posts.AdminList)
				r.Post("/", d.Posts.Create)
				r.Get("/{id}", d.Posts.AdminGet)
				r.Put("/{id}", d.Posts.Update)
				r.Delete("/{id}", d.Posts.Delete)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", d.Comments.AdminList)
				r.Post("/{id}/approve", d.Comments.Approve)
				r.Delete("/{id}", d.Comments.Delete)
			})

			r.Get("/subscribers", d.Newsletter.AdminList)
			r.Post("/uploads", d.Uploads.Upload)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
