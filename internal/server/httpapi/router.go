package httpapi

import (
	"github.com/go-chi/chi/v5"

	"reviewflow/pkg/logging"
)

func NewRouter(handler *Handler, resolver ActorResolver, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware(logger))
	handler.RegisterRoutes(r, NewAuthMiddleware(resolver))
	return r
}
