package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/adapter/notify"
	"github.com/srgjo27/captainbook/internal/core/domain"
)

const (
	eventJoinUserRoom    = "joinUserRoom"
	eventJoinCaptainRoom = "joinCaptainRoom"
	eventLeaveRoom       = "leaveRoom"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxInboundSize = 4096
)

// WSHandler serves the notification socket. With a nil auth any connection
// may join any room; otherwise a join must match the identity of the
// session token presented at upgrade.
type WSHandler struct {
	hub      *notify.Hub
	auth     Authenticator
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(hub *notify.Hub, auth Authenticator, allowedOrigins []string, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log.With().Str("component", "ws").Logger(),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// GET /ws
func (h *WSHandler) Serve(c *gin.Context) {
	token := tokenFromRequest(c)
	if token == "" {
		token = c.Query("token")
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := h.hub.Connect()
	h.log.Debug().Uint64("client", client.ID()).Msg("client connected")

	go h.writePump(conn, client)
	h.readPump(c.Request.Context(), conn, client, token)
}

func (h *WSHandler) readPump(ctx context.Context, conn *websocket.Conn, client *notify.Client, token string) {
	defer func() {
		h.hub.Disconnect(client)
		conn.Close()
		h.log.Debug().Uint64("client", client.ID()).Msg("client disconnected")
	}()

	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Uint64("client", client.ID()).Msg("unexpected close")
			}
			return
		}
		if err := h.handleFrame(ctx, client, token, raw); err != nil {
			h.log.Debug().Err(err).Uint64("client", client.ID()).Msg("ignoring client frame")
		}
	}
}

func (h *WSHandler) handleFrame(ctx context.Context, client *notify.Client, token string, raw []byte) error {
	var frame notify.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return domain.NewValidationError("malformed frame")
	}
	var arg string
	if err := json.Unmarshal(frame.Data, &arg); err != nil {
		return domain.NewValidationError("frame data must be a string")
	}

	switch frame.Event {
	case eventJoinUserRoom:
		id, err := uuid.Parse(arg)
		if err != nil {
			return domain.NewValidationError("invalid user id")
		}
		if err := h.authorizeJoin(ctx, token, domain.RoleUser, id); err != nil {
			return err
		}
		return h.hub.Join(client, domain.UserRoom(id))
	case eventJoinCaptainRoom:
		id, err := uuid.Parse(arg)
		if err != nil {
			return domain.NewValidationError("invalid captain id")
		}
		if err := h.authorizeJoin(ctx, token, domain.RoleCaptain, id); err != nil {
			return err
		}
		return h.hub.Join(client, domain.CaptainRoom(id))
	case eventLeaveRoom:
		room, err := domain.ParseRoom(arg)
		if err != nil {
			return err
		}
		h.hub.Leave(client, room)
		return nil
	default:
		return domain.NewValidationError("unknown event: " + frame.Event)
	}
}

func (h *WSHandler) authorizeJoin(ctx context.Context, token string, role domain.Role, id uuid.UUID) error {
	if h.auth == nil {
		return nil
	}
	p, err := h.auth.Authenticate(ctx, token, role)
	if err != nil {
		return err
	}
	if p.ID != id {
		return domain.NewForbiddenError("cannot join another identity's room")
	}
	return nil
}

// writePump is the only writer on conn. It exits when the hub closes the
// client's queue or a write fails.
func (h *WSHandler) writePump(conn *websocket.Conn, client *notify.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
