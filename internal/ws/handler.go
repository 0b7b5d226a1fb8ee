// Package ws upgrades authenticated connections and pumps frames between
// the client and its session.
package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/admission"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/auth"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/protocol"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/session"
)

const (
	writeTimeout = 3 * time.Second
	readTimeout  = 60 * time.Second
)

// Handler authenticates the upgrade request, registers a session and runs
// the per-connection read loop. Authentication failures reject the request
// before the upgrade; no session ever exists for an unauthenticated socket.
func Handler(reg *session.Registry, authn *auth.Authenticator, limiter admission.Limiter, commentaryInterval time.Duration, allowedOrigins []string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.TokenFromRequest(r)
		if err != nil {
			if errors.Is(err, auth.ErrBadProtocol) {
				http.Error(w, "unsupported subprotocol", http.StatusBadRequest)
				return
			}
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		claims, err := authn.Verify(token)
		if err != nil {
			log.Debug("rejected connection", zap.String("remote", r.RemoteAddr), zap.Error(err))
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{auth.Protocol},
			OriginPatterns: allowedOrigins,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		identity := claims.Identity()
		sess := session.New(uuid.NewString(), identity)
		reg.Add(sess)
		defer reg.Remove(sess.ID)

		log.Info("connection open", zap.String("identity", identity), zap.String("session", sess.ID))
		defer log.Info("connection closed", zap.String("session", sess.ID))

		// Writer goroutine: the outbox is the only path to the wire, so
		// per-session event order is preserved.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range sess.Outbox() {
				payload, err := protocol.Encode(ev)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		sess.Send(protocol.Welcome(identity, commentaryInterval.Milliseconds()))

		// Reader loop: frames from one connection are handled sequentially.
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			typ, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			cmd, err := protocol.Decode(typ == websocket.MessageBinary, data)
			if err != nil {
				sess.Send(protocol.Error("malformed frame"))
				continue
			}
			Dispatch(r.Context(), sess, cmd, limiter, log)
		}
	}
}

// Dispatch applies one decoded command to the session.
func Dispatch(ctx context.Context, sess *session.Session, cmd protocol.Command, limiter admission.Limiter, log *zap.Logger) {
	switch cmd.Kind {
	case protocol.CmdState:
		admitted, err := limiter.TryConsume(ctx, admission.CategoryState, sess.Identity)
		if err != nil {
			log.Warn("admission check failed", zap.String("identity", sess.Identity), zap.Error(err))
			return
		}
		if !admitted {
			// Silent drop: no registry mutation, no outbound event.
			return
		}
		sess.SetState(cmd.State)

	case protocol.CmdCoachEnable:
		sess.SetCoachEnabled(cmd.Enable)
		sess.Send(protocol.CoachStatus(cmd.Enable))

	case protocol.CmdPing:
		sess.Send(protocol.Pong())

	default:
		sess.Send(protocol.Error("unrecognized message type"))
	}
}
