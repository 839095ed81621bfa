package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/netpad/internal/server/api"
)

func newTestServer(cfg api.ServerConfig) *api.Server {
	s := api.New("127.0.0.1:0", cfg, slog.Default())
	s.Router().Register(http.MethodGet, "/ok", func(req *api.Request, res *api.Response, _ *slog.Logger) error {
		res.JSON = `{"status":"OK"}`
		return nil
	})
	s.Router().Register(http.MethodGet, "/item/{id}", func(req *api.Request, res *api.Response, _ *slog.Logger) error {
		if req.Params["id"] == "missing" {
			return api.Errorf(http.StatusNotFound, "item %s not found", req.Params["id"])
		}
		res.JSON = `{"id":"` + req.Params["id"] + `"}`
		return nil
	})
	s.Router().Register(http.MethodGet, "/boom", func(*api.Request, *api.Response, *slog.Logger) error {
		return io.ErrUnexpectedEOF
	})
	s.Router().Register(http.MethodGet, "/empty", func(*api.Request, *api.Response, *slog.Logger) error {
		return nil
	})
	return s
}

func serve(t *testing.T, s *api.Server, r *http.Request) (*http.Response, string) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServerRouting(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "ok", path: "/ok", wantStatus: http.StatusOK, wantBody: `{"status":"OK"}`},
		{name: "path params", path: "/item/7", wantStatus: http.StatusOK, wantBody: `{"id":"7"}`},
		{name: "typed error", path: "/item/missing", wantStatus: http.StatusNotFound, wantBody: `{"error":"item missing not found"}`},
		{name: "plain error", path: "/boom", wantStatus: http.StatusInternalServerError, wantBody: `{"error":"unexpected EOF"}`},
		{name: "empty response", path: "/empty", wantStatus: http.StatusNoContent, wantBody: ""},
		{name: "unknown path", path: "/nope", wantStatus: http.StatusNotFound, wantBody: `{"error":"unknown path"}`},
	}
	s := newTestServer(api.ServerConfig{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := serve(t, s, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestServerPreflight(t *testing.T) {
	s := newTestServer(api.ServerConfig{APIKey: "secret"})

	resp, _ := serve(t, s, httptest.NewRequest(http.MethodOptions, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodGet)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), api.KeyHeader)
}

func TestServerAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "wrong", header: "secreT", wantStatus: http.StatusUnauthorized},
		{name: "prefix", header: "secret-and-more", wantStatus: http.StatusUnauthorized},
		{name: "header", header: "secret", wantStatus: http.StatusOK},
		{name: "query", query: "?key=secret", wantStatus: http.StatusOK},
	}
	s := newTestServer(api.ServerConfig{APIKey: "secret"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ok"+tt.query, nil)
			if tt.header != "" {
				r.Header.Set(api.KeyHeader, tt.header)
			}
			resp, body := serve(t, s, r)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `{"error":"unauthorized"}`, body)
			}
		})
	}
}

func TestServerStartAndClose(t *testing.T) {
	s := newTestServer(api.ServerConfig{})
	require.NoError(t, s.Start())
	defer s.Close()

	resp, err := http.Get("http://" + s.Addr() + "/ok")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
