package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Alia5/netpad/apitypes"
)

// StreamPath is the websocket endpoint for controller payloads.
const StreamPath = "/controller/ws"

// ControllerStream sends payloads over one websocket connection. Each Send
// waits for the server's acknowledgement.
type ControllerStream struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// OpenStream dials the controller websocket.
func (c *Client) OpenStream(ctx context.Context) (*ControllerStream, error) {
	if c.transport.mock != nil {
		return nil, errors.New("streaming not supported with mock transport")
	}
	dialer := websocket.Dialer{HandshakeTimeout: c.transport.cfg.DialTimeout}
	var hdr http.Header
	if c.transport.cfg.APIKey != "" {
		hdr = http.Header{KeyHeader: []string{c.transport.cfg.APIKey}}
	}
	conn, _, err := dialer.DialContext(ctx, c.transport.WebsocketURL(StreamPath), hdr)
	if err != nil {
		return nil, fmt.Errorf("dial stream: %w", err)
	}
	return &ControllerStream{conn: conn}, nil
}

// Send writes p and returns the acknowledgement.
func (s *ControllerStream) Send(p apitypes.ControllerPayload) (*apitypes.StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.New("stream closed")
	}
	if err := s.conn.WriteJSON(p); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return parse[apitypes.StatusResponse](string(msg))
}

// Close sends a close frame and closes the connection. It is idempotent.
func (s *ControllerStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}
