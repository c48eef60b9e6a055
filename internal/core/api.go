package core

import "time"

// Request types

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,min=4,max=5"` // "e2e4", or "e7e8n" to pick the promotion piece
}

type UndoRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=300"`
}

type SeatRequest struct {
	Color string `json:"color" validate:"required,oneof=w b white black"`
}

type SaveRequest struct {
	SaveID string `json:"saveId,omitempty" validate:"omitempty,saveid"`
}

// Response types

type GameResponse struct {
	GameID   string    `json:"gameId"`
	FEN      string    `json:"fen"`
	Turn     string    `json:"turn"`  // "w" or "b"
	State    string    `json:"state"` // "ongoing", "white wins", "black wins"
	Check    bool      `json:"check"`
	Moves    []string  `json:"moves"`
	Seats    SeatsInfo `json:"seats"`
	LastMove *MoveInfo `json:"lastMove,omitempty"`
}

type SeatsInfo struct {
	White bool `json:"white"` // true once claimed
	Black bool `json:"black"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Outcome     string `json:"outcome"`
	Captured    string `json:"captured,omitempty"`
	Promotion   string `json:"promotion,omitempty"`
	EnPassant   bool   `json:"enPassant,omitempty"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type SeatResponse struct {
	GameID string `json:"gameId"`
	Color  string `json:"color"`
	Token  string `json:"token"`
}

type SaveResponse struct {
	SaveID string `json:"saveId"`
	Body   string `json:"body"`
}

type SaveInfo struct {
	SaveID    string    `json:"saveId"`
	Side      string    `json:"side"` // side to move
	Plies     int       `json:"plies"`
	CreatedAt time.Time `json:"createdAt"`
}

type PGNResponse struct {
	GameID string `json:"gameId"`
	PGN    string `json:"pgn"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Stream message types
const (
	StreamState  = "state"
	StreamMove   = "move"
	StreamError  = "error"
	StreamClosed = "closed"
)

// StreamMessage is the websocket envelope in both directions
type StreamMessage struct {
	Type  string         `json:"type"`
	Move  string         `json:"move,omitempty"`  // client -> server
	Token string         `json:"token,omitempty"` // client -> server, seat token
	Game  *GameResponse  `json:"game,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}
