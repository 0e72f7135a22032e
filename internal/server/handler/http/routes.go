// Package http provides HTTP routing and middleware configuration
// for the taskboard service.
package http

import (
	"net/http"

	"github.com/atinyakov/taskboard/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the taskboard API. It applies JSON content-type enforcement,
// request logging, and bearer-token authentication, and mounts the
// authentication endpoints under /auth and the task resource under /tasks.
//
// Parameters:
//
//	authHandler - handler for registration, login, and identity endpoints
//	taskHandler - handler for the task resource
//	authGate    - bearer-token middleware guarding the protected routes
//	logger      - structured logger for request logging middleware
//
// Routes:
//
//	POST   /auth/register → authHandler.Register
//	POST   /auth/login    → authHandler.Login
//	GET    /auth/me       → authHandler.Me (protected)
//	GET    /tasks         → taskHandler.List (protected)
//	POST   /tasks         → taskHandler.Create (protected)
//	PATCH  /tasks/{id}    → taskHandler.Update (protected)
//	DELETE /tasks/{id}    → taskHandler.Delete (protected)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. authGate (protected groups only)     — enforces bearer-token auth
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	authGate func(http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests whose bodies are Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authGate)
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Patch("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}
