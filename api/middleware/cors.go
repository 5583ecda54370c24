package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/inkwellpress/inkwell-backend/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"https://inkwellpress.com",
	"https://www.inkwellpress.com",
}

// CORS returns middleware that applies the storefront's allowed origin
// policy. Origins from config extend the defaults.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(defaultCORSOrigins)+len(cfg.AllowedOrigins))
	origins = append(origins, defaultCORSOrigins...)
	origins = append(origins, cfg.AllowedOrigins...)
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
