package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Alia5/netpad/apitypes"
	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/server/api"
)

const wsWriteTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  api.MaxBodyBytes,
	WriteBufferSize: 1024,
	// CORS is open for the HTTP routes; websocket clients get the same.
	CheckOrigin: func(*http.Request) bool { return true },
}

// ControllerStream returns a websocket handler. Every text message is a
// controller payload and is acknowledged with the same JSON the POST
// endpoint returns.
func ControllerStream(rx *input.Receiver) api.StreamHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, logger *slog.Logger) error {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied with an HTTP error.
			return err
		}
		defer conn.Close()
		conn.SetReadLimit(api.MaxBodyBytes)

		stop := context.AfterFunc(r.Context(), func() { _ = conn.Close() })
		defer stop()

		for {
			kind, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
					errors.Is(r.Context().Err(), context.Canceled) {
					return nil
				}
				return err
			}
			if kind != websocket.TextMessage {
				continue
			}

			var ack any = apitypes.StatusResponse{Status: "OK"}
			if err := applyPayload(rx, msg); err != nil {
				logger.Warn("ws payload rejected", "error", err)
				ack = apitypes.ApiError{Error: err.Error()}
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(ack); err != nil {
				return err
			}
		}
	}
}
