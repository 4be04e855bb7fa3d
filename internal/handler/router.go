// internal/handler/router.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/fitkitchen-backend/internal/controller"
	middlewarePkg "github.com/unclebandit/fitkitchen-backend/internal/middleware"
)

// NewRouter wires the HTTP routes to the customer controller.
func NewRouter(customers *controller.CustomerController) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", Root)
	customers.RegisterRoutes(r)

	return r
}

// Root is the welcome endpoint.
func Root(w http.ResponseWriter, r *http.Request) {
	controller.RespondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to FitKitchen API"})
}
