package server

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// socketReply is sent for every message received on /ws. Exactly one
// field is set.
type socketReply struct {
	HTML  *string           `json:"html,omitempty"`
	Error *errors.JSONError `json:"error,omitempty"`
}

// handleWebSocket renders each text message as a document. ?static=1
// applies to every message on the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.metrics.RecordWebSocketOpen()
	defer s.metrics.RecordWebSocketClose()

	cfg := s.config.WebSocket
	static := isStatic(r)
	// The request context ends when the handler returns; socket renders
	// keep its values only.
	ctx := context.WithoutCancel(r.Context())
	logger := s.logger.With("request_id", chimw.GetReqID(ctx))

	conn.SetReadLimit(cfg.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket closed", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

		reply := s.renderMessage(ctx, messageType, data, static)
		status := "success"
		if reply.Error != nil {
			status = "error"
		}
		s.metrics.RecordWebSocketMessage(status)

		_ = conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}

// renderMessage decodes and renders one socket message.
func (s *Server) renderMessage(ctx context.Context, messageType int, data []byte, static bool) socketReply {
	if messageType != websocket.TextMessage {
		return errorReply(errors.New("E152").WithDetail("only text messages are accepted"))
	}
	node, err := s.decoder.Decode(documentName, data)
	if err != nil {
		return errorReply(errors.FromError(err, "E040"))
	}
	html, err := s.render(ctx, node, static)
	if err != nil {
		return errorReply(errors.FromError(err, "E003"))
	}
	return socketReply{HTML: &html}
}

func errorReply(err *errors.Error) socketReply {
	body := err.JSON()
	return socketReply{Error: &body}
}

// pingLoop sends heartbeats until done is closed or a ping fails.
func (s *Server) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.config.WebSocket.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WebSocket.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
