package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/pomodoro-api/internal/api"
	apiMiddleware "github.com/phrazzld/pomodoro-api/internal/api/middleware"
)

// setupRouter wires all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	userHandler := api.NewUserHandler(app.authService)
	taskHandler := api.NewTaskHandler(app.taskService)
	categoryHandler := api.NewCategoryHandler(app.categoryStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Token endpoints take the credential from the form or the
		// Authorization header themselves; no middleware involved.
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Get("/auth/me", authHandler.Me)

		r.Post("/users/", userHandler.Create)

		r.Route("/tasks", func(r chi.Router) {
			// Public, global reads
			r.Get("/all", taskHandler.GetAll)
			r.Get("/id/{task_id}", taskHandler.GetByID)
			r.Get("/name/{task_name}", taskHandler.GetByName)
			r.Get("/users-tasks/{user_id}", taskHandler.GetForUser)

			// Writes and own-task reads require a valid access token
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", taskHandler.Create)
				r.Get("/users-tasks", taskHandler.GetOwn)
				r.Patch("/{task_id}", taskHandler.UpdateName)
				r.Delete("/{task_id}", taskHandler.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetAll)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", categoryHandler.Create)
				r.Delete("/{category_id}", categoryHandler.Delete)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
