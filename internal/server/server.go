package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/skinsgame/skinsd/internal/game"
)

// Server serves the scoring engine over HTTP and WebSocket.
type Server struct {
	addr        string
	cfg         *Config
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// NewServer creates a new scoring server.
func NewServer(cfg *Config, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: cfg.ListenAddr(),
		cfg:  cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// NewServerWithAddr creates a server listening on an explicit address
// instead of the configured one.
func NewServerWithAddr(cfg *Config, addr string, logger *log.Logger) *Server {
	s := NewServer(cfg, logger)
	s.addr = addr
	return s
}

// routes builds the request mux. Split from Start so tests can serve it
// through httptest.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/skins/calculate", s.handleCalculate)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	go s.run()

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.routes(),
	}

	s.logger.Info("Starting skins server", "addr", s.addr,
		"stake", s.cfg.Game.Stake, "tiePolicy", s.cfg.Game.TiePolicy)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server and closes all live connections.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close() // Ignore close errors during unregistration
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// calculate runs one request through the engine. The returned error is a
// *game.ValidationError for bad input; anything else is an engine defect.
func (s *Server) calculate(req *CalculateRequest) (*CalculateResponse, error) {
	round, err := game.NewRound(req.HolesCount, req.entries(), s.cfg.RoundOptions()...)
	if err != nil {
		return nil, err
	}

	result := game.Resolve(round)
	if err := game.ValidateStakeConservation(round, result); err != nil {
		return nil, fmt.Errorf("internal scoring error: %w", err)
	}

	resp := NewCalculateResponse(result)
	return &resp, nil
}

// handleCalculate handles POST /api/skins/calculate.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requestID := uuid.NewString()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Debug("Malformed request body", "requestId", requestID, "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.calculate(&req)
	if err != nil {
		var verr *game.ValidationError
		if errors.As(err, &verr) {
			s.logger.Debug("Rejected round", "requestId", requestID,
				"field", verr.Field, "player", verr.PlayerID)
			s.writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		s.logger.Error("Scoring failed", "requestId", requestID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Debug("Calculated round", "requestId", requestID,
		"holes", req.HolesCount, "players", len(req.Players), "winner", resp.Winner)
	s.writeJSON(w, http.StatusOK, resp)
}

// handleWebSocket handles WebSocket upgrade requests for live scoring.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorData{Message: message})
}
