package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"livepoll/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LiveHandler serves the live update channels. WebSocket and SSE clients
// receive the same messages.
type LiveHandler struct {
	dispatcher *realtime.Dispatcher
	buffer     int
	upgrader   websocket.Upgrader
}

func NewLiveHandler(dispatcher *realtime.Dispatcher, buffer int) *LiveHandler {
	return &LiveHandler{
		dispatcher: dispatcher,
		buffer:     buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *LiveHandler) WebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied.
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	ch := realtime.NewWebSocketChannel(conn, h.buffer)
	go ch.WritePump()

	tok, err := h.dispatcher.Attach(ch)
	if err != nil {
		ch.Close()
		return
	}
	ch.ReadPump()
	h.dispatcher.Detach(tok)
}

// Events streams live updates as Server-Sent Events until the client goes
// away or the channel is dropped.
func (h *LiveHandler) Events(c *gin.Context) {
	ch := realtime.NewSSEChannel(h.buffer)
	tok, err := h.dispatcher.Attach(ch)
	if err != nil {
		respondError(c, err)
		return
	}
	defer h.dispatcher.Detach(tok)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ch.Done():
			return false
		case msg := <-ch.Messages():
			c.SSEvent("message", string(msg))
			return true
		}
	})
}
