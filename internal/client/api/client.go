// Package api is a thin HTTP client for the termchess server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"termchess/internal/core"

	"github.com/fasthttp/websocket"
	"github.com/fatih/color"
)

var (
	reqColor  = color.New(color.FgBlue)
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	bodyColor = color.New(color.FgCyan)
)

// APIError is a non-2xx reply
type APIError struct {
	Status int
	core.ErrorResponse
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s", e.Status, e.ErrorResponse.Error)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
}

type Client struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
	Verbose    bool
	// Trace prints every request line and status to Out
	Trace bool
	Out   io.Writer
}

func New(baseURL string, out io.Writer) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// long-polls hold for up to 25s
			Timeout: 30 * time.Second,
		},
		Out: out,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) SetToken(token string) {
	c.AuthToken = token
}

func (c *Client) doRequest(method, path string, body any, result any) error {
	var bodyReader io.Reader
	var jsonData []byte
	if body != nil {
		var err error
		if jsonData, err = json.Marshal(body); err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	if c.Trace {
		reqColor.Fprintf(c.Out, "[API] %s %s\n", method, path)
		if c.Verbose && len(jsonData) > 0 {
			c.prettyPrint("Request Body:", jsonData)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if c.Trace {
		statusColor := okColor
		if resp.StatusCode >= 400 {
			statusColor = failColor
		}
		statusColor.Fprintf(c.Out, "[%d %s]\n", resp.StatusCode, http.StatusText(resp.StatusCode))
		if c.Verbose && len(respBody) > 0 {
			c.prettyPrint("Response Body:", respBody)
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.ErrorResponse); err != nil || apiErr.ErrorResponse.Error == "" {
			apiErr.ErrorResponse.Error = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) prettyPrint(title string, data []byte) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		bodyColor.Fprintf(c.Out, "%s\n%s\n", title, data)
		return
	}
	pretty, _ := json.MarshalIndent(v, "", "  ")
	bodyColor.Fprintf(c.Out, "%s\n%s\n", title, pretty)
}

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(fen string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games", &core.CreateGameRequest{FEN: fen}, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

// GetGameWithPoll blocks until the game's ply count differs from moveCount
// or the server's wait times out
func (c *Client) GetGameWithPoll(gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("/api/v1/games/%s?wait=true&moveCount=%d", gameID, moveCount)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) MakeMove(gameID, move string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/moves", &core.MoveRequest{Move: move}, &resp)
	return &resp, err
}

func (c *Client) UndoMoves(gameID string, count int) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/undo", &core.UndoRequest{Count: count}, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/board", nil, &resp)
	return &resp, err
}

// ClaimSeat claims a color and keeps the returned token for later moves
func (c *Client) ClaimSeat(gameID, color string) (*core.SeatResponse, error) {
	var resp core.SeatResponse
	if err := c.doRequest("POST", "/api/v1/games/"+gameID+"/seats", &core.SeatRequest{Color: color}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) SaveGame(gameID, saveID string) (*core.SaveResponse, error) {
	var resp core.SaveResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/save", &core.SaveRequest{SaveID: saveID}, &resp)
	return &resp, err
}

func (c *Client) ListSaves() ([]core.SaveInfo, error) {
	var resp []core.SaveInfo
	err := c.doRequest("GET", "/api/v1/saves", nil, &resp)
	return resp, err
}

func (c *Client) LoadSave(saveID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/saves/"+url.PathEscape(saveID)+"/load", nil, &resp)
	return &resp, err
}

func (c *Client) ExportPGN(gameID string) (*core.PGNResponse, error) {
	var resp core.PGNResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/pgn", nil, &resp)
	return &resp, err
}

// RawRequest performs a raw request and prints the reply body
func (c *Client) RawRequest(method, path string, body string) error {
	var bodyData any
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			bodyData = body
		}
	}

	var result json.RawMessage
	if err := c.doRequest(method, path, bodyData, &result); err != nil {
		return err
	}
	if len(result) > 0 {
		c.prettyPrint("Response:", result)
	}
	return nil
}

// Stream is an open websocket game stream
type Stream struct {
	conn *websocket.Conn
}

// OpenStream dials the game's websocket
func (c *Client) OpenStream(gameID string) (*Stream, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/games/" + gameID + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("stream dial failed: %w", err)
	}
	return &Stream{conn: conn}, nil
}

// Next blocks for the next server message
func (s *Stream) Next() (core.StreamMessage, error) {
	var msg core.StreamMessage
	err := s.conn.ReadJSON(&msg)
	return msg, err
}

// Move sends a move over the stream. The result arrives as a later message.
func (s *Stream) Move(move, token string) error {
	return s.conn.WriteJSON(core.StreamMessage{Type: core.StreamMove, Move: move, Token: token})
}

func (s *Stream) Close() error {
	return s.conn.Close()
}
