package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/auth"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/config"
)

func TestMintToken_IssuesVerifiableToken(t *testing.T) {
	authn := auth.NewAuthenticator("test-secret")
	handler := MintToken(authn, "admin-secret", time.Hour, zap.NewNop())

	req := httptest.NewRequest("POST", "/token", strings.NewReader(`{"subject":"alice","role":"player"}`))
	req.Header.Set("X-Admin-Secret", "admin-secret")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	claims, err := authn.Verify(resp.Token)
	if err != nil {
		t.Fatalf("minted token failed verification: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != "player" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestMintToken_RejectsWrongAdminSecret(t *testing.T) {
	authn := auth.NewAuthenticator("test-secret")
	handler := MintToken(authn, "admin-secret", time.Hour, zap.NewNop())

	req := httptest.NewRequest("POST", "/token", strings.NewReader(`{"subject":"alice"}`))
	req.Header.Set("X-Admin-Secret", "guess")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", rec.Code)
	}
}

func TestMintToken_RejectsBadBody(t *testing.T) {
	authn := auth.NewAuthenticator("test-secret")
	handler := MintToken(authn, "admin-secret", time.Hour, zap.NewNop())

	req := httptest.NewRequest("POST", "/token", strings.NewReader(`{not json`))
	req.Header.Set("X-Admin-Secret", "admin-secret")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestSetupRoutes_TokenEndpointDisabledWithoutSecret(t *testing.T) {
	authn := auth.NewAuthenticator("test-secret")
	cfg := config.Config{} // no AdminSecret
	handler := SetupRoutes(func(w http.ResponseWriter, r *http.Request) {}, authn, cfg, zap.NewNop())

	req := httptest.NewRequest("POST", "/token", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusCreated {
		t.Fatalf("token endpoint must be disabled without an admin secret")
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	Healthz(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}
