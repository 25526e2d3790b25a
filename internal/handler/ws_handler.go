/*
Package handler provides the HTTP handler for WebSocket connection upgrading.

HandleWebSocket rate-limits and authenticates the caller, upgrades the HTTP
connection, and hands the resulting client to the Gateway, which binds it
into the presence registry.
*/
package handler

import (
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"letteram/internal/app/chat"
	"letteram/internal/app/user"
	"letteram/internal/pkg/auth/jwt"
	"letteram/internal/pkg/errs"
	"letteram/internal/pkg/limiter"
	"letteram/internal/pkg/logx"
	"letteram/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		tokenString := jwt.TokenFromRequest(r)
		if tokenString == "" {
			logx.Warn("WebSocket request rejected: Missing token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		identity, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket request rejected: Invalid token", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		account, err := deps.Users.GetByID(r.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}
			logx.Error(err, "WebSocket request: user fetch failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		logx.Info("Attempting to upgrade connection", "user_id", account.ID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Gateway, conn, account)

		go client.WritePump()

		deps.Gateway.Connect(client)

		logx.Info("WebSocket connection established", "user_id", account.ID)

		client.ReadPump()
	}
}
