package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/auth"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/config"
)

// SetupRoutes builds the router *with* the session machinery injected via
// the ws handler.
func SetupRoutes(wsHandler http.HandlerFunc, authn *auth.Authenticator, cfg config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", wsHandler)

	// Dev-only token minting; disabled when no admin secret is configured.
	if cfg.AdminSecret != "" {
		r.Post("/token", MintToken(authn, cfg.AdminSecret, cfg.TokenTTL, log))
	}

	// Serve the browser client alongside the API when a web root is set.
	if cfg.WebRoot != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.WebRoot)))
	}
	return r
}
