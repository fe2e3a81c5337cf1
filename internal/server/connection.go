package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/skinsgame/skinsd/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a live-scoring client.
// Each calculate message is answered with one hole_result per hole in
// play order, then a final round_result.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	server    *Server
}

// NewConnection creates a new connection wrapper.
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 64),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		server: server,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// sendMessage queues a message to the client.
func (c *Connection) sendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client.
func (c *Connection) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.ctx.Done():
			_ = c.Close() // Server already shutting down
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes an incoming message from the client.
func (c *Connection) handleMessage(msg *Message) {
	requestID := msg.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.logger.Debug("Received message", "type", msg.Type, "requestId", requestID)

	switch msg.Type {
	case MessageTypeCalculate:
		var req CalculateRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(requestID, "invalid_message", "failed to parse calculate data")
			return
		}
		c.streamRound(requestID, &req)

	default:
		c.sendError(requestID, "unknown_type", "unknown message type: "+string(msg.Type))
	}
}

// streamRound scores one round and streams each hole outcome before the
// final result.
func (c *Connection) streamRound(requestID string, req *CalculateRequest) {
	resp, err := c.server.calculate(req)
	if err != nil {
		var verr *game.ValidationError
		if errors.As(err, &verr) {
			c.sendError(requestID, "validation_failed", verr.Message)
			return
		}
		c.logger.Error("Scoring failed", "requestId", requestID, "error", err)
		c.sendError(requestID, "internal_error", "internal error")
		return
	}

	for i := range resp.Holes {
		if err := c.sendTyped(requestID, MessageTypeHoleResult, resp.Holes[i]); err != nil {
			return
		}
	}
	if err := c.sendTyped(requestID, MessageTypeRoundResult, resp); err != nil {
		return
	}

	c.logger.Debug("Streamed round", "requestId", requestID,
		"holes", len(resp.Holes), "winner", resp.Winner)
}

func (c *Connection) sendTyped(requestID string, messageType MessageType, data interface{}) error {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to marshal message", "type", messageType, "error", err)
		return err
	}
	msg.RequestID = requestID
	return c.sendMessage(msg)
}

func (c *Connection) sendError(requestID, code, message string) {
	_ = c.sendTyped(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}
