package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write an event to the client.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the client.
	pongWait = 60 * time.Second
	// Send pings to the client with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from the client.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWS upgrades the connection and streams the owner's draft events over
// it. The subscription is released on every exit path, including abnormal
// closes, so subscriber lists cannot grow unboundedly.
func (h *Handler) serveWS(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	log := h.logger.With(zap.String("userID", userID))

	ch, ok := h.notifier.Subscribe(userID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, APIError{Message: "Too many open update streams"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error response.
		h.notifier.Unsubscribe(userID, ch)
		log.Error("Failed to upgrade connection", zap.Error(err))
		return
	}
	defer h.notifier.Unsubscribe(userID, ch)
	defer conn.Close()

	log.Info("Update stream established")

	// Reader goroutine: the client sends nothing meaningful, but reading is
	// how we learn about closes and keep the pong handler running.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, open := <-ch:
			if !open {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Debug("Failed to write event, closing stream", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			log.Info("Update stream closed by client")
			return
		}
	}
}
