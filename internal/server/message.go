package server

import (
	"encoding/json"
	"time"

	"github.com/skinsgame/skinsd/internal/game"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client → Server
	MessageTypeCalculate MessageType = "calculate"

	// Server → Client
	MessageTypeHoleResult  MessageType = "hole_result"
	MessageTypeRoundResult MessageType = "round_result"
	MessageTypeError       MessageType = "error"
)

// Message is the base WebSocket message envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// CalculateRequest is the payload of POST /api/skins/calculate and of the
// WebSocket calculate message.
type CalculateRequest struct {
	HolesCount int           `json:"holesCount"`
	Players    []PlayerInput `json:"players"`
}

// PlayerInput is one player's id and per-hole stroke counts.
type PlayerInput struct {
	ID     string `json:"id"`
	Scores []int  `json:"scores"`
}

// HoleResult is one hole's resolution as sent to clients.
type HoleResult struct {
	HoleNumber int            `json:"holeNumber"`
	BankBefore int            `json:"bankBefore"`
	Scores     map[string]int `json:"scores"`
	Winners    []string       `json:"winners"`
}

// CalculateResponse is the full round result as sent to clients.
type CalculateResponse struct {
	PlayerSkins   map[string]int `json:"playerSkins"`
	Winner        string         `json:"winner"`
	Holes         []HoleResult   `json:"holes"`
	UnclaimedBank int            `json:"unclaimedBank"`
}

// ErrorData carries a human-readable failure description.
type ErrorData struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// entries converts the request players into engine input.
func (req *CalculateRequest) entries() []game.PlayerEntry {
	entries := make([]game.PlayerEntry, len(req.Players))
	for i, p := range req.Players {
		entries[i] = game.PlayerEntry{ID: p.ID, Scores: p.Scores}
	}
	return entries
}

// NewCalculateResponse maps an engine result to the wire shape.
func NewCalculateResponse(res *game.RoundResult) CalculateResponse {
	holes := make([]HoleResult, len(res.Holes))
	for i, h := range res.Holes {
		holes[i] = HoleResult{
			HoleNumber: h.HoleNumber,
			BankBefore: h.BankBefore,
			Scores:     h.Scores,
			Winners:    h.Winners,
		}
	}
	return CalculateResponse{
		PlayerSkins:   res.PlayerSkins,
		Winner:        res.Winner,
		Holes:         holes,
		UnclaimedBank: res.UnclaimedBank,
	}
}
