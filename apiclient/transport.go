package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// KeyHeader carries the API key.
const KeyHeader = "X-API-Key"

// Config controls low-level transport behavior such as timeouts.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// APIKey is sent with every request when set.
	APIKey string
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Transport is the low-level HTTP implementation used by Client. It returns
// raw response bodies; both success and error payloads are JSON.
type Transport struct {
	base   string
	mock   func(method, path string, payload any) (string, error)
	cfg    Config
	client *http.Client
}

// NewTransport creates a transport for addr, either "host:port" or a base
// URL such as "http://pad.local:8080".
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a new low-level transport with optional
// timeouts configuration.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	dialer := &net.Dialer{Timeout: c.DialTimeout}
	return &Transport{
		base: baseURL(addr),
		cfg:  c,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				ResponseHeaderTimeout: c.ReadTimeout,
			},
			Timeout: c.DialTimeout + c.WriteTimeout + c.ReadTimeout,
		},
	}
}

// NewMockTransport creates a transport that returns canned responses without
// real networking.
func NewMockTransport(responder func(method, path string, payload any) (string, error)) *Transport {
	return &Transport{base: "mock://", mock: responder, cfg: defaultConfig()}
}

// Do sends a request and returns the response body.
// Payload handling rules:
//
//	[]byte -> sent as-is
//	string -> UTF-8 bytes
//	struct/other -> JSON marshaled bytes
//	nil -> no body
func (c *Transport) Do(method, path string, payload any) (string, error) {
	return c.DoCtx(context.Background(), method, path, payload)
}

// DoCtx is like Do but honors the provided context.
func (c *Transport) DoCtx(ctx context.Context, method, path string, payload any) (string, error) {
	if c.mock != nil {
		return c.mock(method, path, payload)
	}
	body, err := toPayloadBytes(payload)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set(KeyHeader, c.cfg.APIKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// WebsocketURL returns the ws:// (or wss://) URL for path.
func (c *Transport) WebsocketURL(path string) string {
	switch {
	case strings.HasPrefix(c.base, "https://"):
		return "wss://" + strings.TrimPrefix(c.base, "https://") + path
	case strings.HasPrefix(c.base, "http://"):
		return "ws://" + strings.TrimPrefix(c.base, "http://") + path
	default:
		return c.base + path
	}
}

func baseURL(addr string) string {
	addr = strings.TrimRight(addr, "/")
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return addr
}

func toPayloadBytes(v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	default:
		return json.Marshal(v)
	}
}
