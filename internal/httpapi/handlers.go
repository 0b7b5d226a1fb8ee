// Package httpapi exposes the HTTP surface around the WebSocket endpoint:
// health, dev token minting and static assets.
package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/auth"
)

type mintRequest struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

type mintResponse struct {
	Token string `json:"token"`
}

// MintToken issues a signed credential for dev clients. The caller proves
// knowledge of the administrative secret via the X-Admin-Secret header.
func MintToken(authn *auth.Authenticator, adminSecret string, ttl time.Duration, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("X-Admin-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminSecret)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req mintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if req.Role == "" {
			req.Role = "player"
		}

		token, err := authn.Mint(req.Subject, req.Role, ttl)
		if err != nil {
			log.Error("minting token failed", zap.Error(err))
			http.Error(w, "failed to mint token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(mintResponse{Token: token})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
