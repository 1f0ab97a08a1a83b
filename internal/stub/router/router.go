// Package router wires the stub backend's routes and middleware.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quillchat-dev/quillchat/internal/metrics"
	"github.com/quillchat-dev/quillchat/internal/stub/handler"
	"github.com/quillchat-dev/quillchat/shared/jwt"
	"github.com/quillchat-dev/quillchat/shared/utils"
)

func New(h *handler.Handler, jwtService jwt.JwtService, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}))
	}
	r.Use(metrics.Middleware)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if jwtService != nil {
			r.Use(needAuth(jwtService))
		}
		r.Post("/process-pdf", h.ProcessPdf)
		r.Post("/process-excel", h.ProcessExcel)
		r.Get("/files/{threadId}", h.ListFiles)
		r.Get("/file/{threadId}/{fileId}", h.GetFile)
		r.Delete("/file/{threadId}/{fileId}", h.DeleteFile)
	})

	return r
}

// needAuth verifies the forwarded bearer token.
func needAuth(jwtService jwt.JwtService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenStr == "" {
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			if _, err := jwtService.DecodeToken(tokenStr); err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
