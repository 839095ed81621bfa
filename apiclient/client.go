package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Alia5/netpad/apitypes"
)

// Client provides a typed interface to the netpad HTTP API.
type Client struct{ transport *Transport }

// New constructs a client for addr ("host:port" or a base URL).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport settings.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Send stages a controller payload. Groups left nil are released (buttons)
// or keep their last value (sticks).
func (c *Client) Send(p apitypes.ControllerPayload) (*apitypes.StatusResponse, error) {
	return c.SendCtx(context.Background(), p)
}

func (c *Client) SendCtx(ctx context.Context, p apitypes.ControllerPayload) (*apitypes.StatusResponse, error) {
	line, err := c.transport.DoCtx(ctx, http.MethodPost, "/controller", p)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.StatusResponse](line)
}

// Ping returns the server identity and version.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	line, err := c.transport.DoCtx(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](line)
}

// State returns the reconciled controller state of the last tick.
func (c *Client) State() (*apitypes.StateResponse, error) {
	return c.StateCtx(context.Background())
}

func (c *Client) StateCtx(ctx context.Context) (*apitypes.StateResponse, error) {
	line, err := c.transport.DoCtx(ctx, http.MethodGet, "/state", nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.StateResponse](line)
}

func parse[T any](line string) (*T, error) {
	if line == "" {
		return nil, errors.New("empty response")
	}
	var ae apitypes.ApiError
	if err := json.Unmarshal([]byte(line), &ae); err == nil && ae.Error != "" {
		return nil, errors.New(ae.Error)
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
