// Package auth verifies the bearer credential presented at WebSocket
// handshake time and mints dev tokens for the /token endpoint.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Protocol is the application subprotocol a client must request first.
const Protocol = "pong.v1"

// AnonymousIdentity is used when a valid token carries no subject claim.
const AnonymousIdentity = "anonymous"

var (
	ErrMissingToken = errors.New("missing token")
	ErrBadProtocol  = errors.New("unsupported subprotocol")
)

// Claims is the decoded identity of a verified credential.
type Claims struct {
	Subject string
	Role    string
}

// Identity returns the stable per-user key for quota and session tracking.
func (c Claims) Identity() string {
	if c.Subject == "" {
		return AnonymousIdentity
	}
	return c.Subject
}

// Authenticator validates and issues HS256 tokens against a shared secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Verify checks signature and expiry and returns the decoded claims.
func (a *Authenticator) Verify(token string) (Claims, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("verifying token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("verifying token: unexpected claims type")
	}

	sub, _ := claims.GetSubject()
	role, _ := claims["role"].(string)
	return Claims{Subject: sub, Role: role}, nil
}

// Mint issues a signed token with a subject, role and expiry. Used only by
// the dev minting endpoint, never in the connection path.
func (a *Authenticator) Mint(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// TokenFromRequest extracts the credential from an upgrade request. The
// client requests ["pong.v1", "<token>"]; browsers can only smuggle the
// token through the subprotocol list, so the second entry is the credential.
// A ?token= query parameter is accepted as a fallback.
func TokenFromRequest(r *http.Request) (string, error) {
	var protocols []string
	for _, header := range r.Header.Values("Sec-WebSocket-Protocol") {
		for _, p := range strings.Split(header, ",") {
			if p = strings.TrimSpace(p); p != "" {
				protocols = append(protocols, p)
			}
		}
	}

	if len(protocols) == 0 || protocols[0] != Protocol {
		return "", ErrBadProtocol
	}
	if len(protocols) > 1 {
		return protocols[1], nil
	}
	if tok := r.URL.Query().Get("token"); tok != "" {
		return tok, nil
	}
	return "", ErrMissingToken
}
