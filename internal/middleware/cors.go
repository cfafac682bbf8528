package middleware

import (
	"net/http"

	"oliu-backend/internal/config"
	"github.com/rs/cors"
)

// NewCORS builds the cross-origin policy for the order form frontends. The
// allowed origins differ per deployment and come from config.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		// Preflight responses may be cached for five minutes.
		MaxAge: 300,
	})

	return c.Handler
}
