// Package testing holds helpers shared by API tests.
package testing

import (
	"log/slog"
	"testing"
	"time"

	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/server/api"
)

// StartAPIServer starts an API server on a free loopback port and calls
// register to allow the caller to register the handlers needed for the
// test. Returns the bound address and a function to call when done.
func StartAPIServer(t *testing.T, register func(r *api.Router, apiSrv *api.Server)) (addr string, done func()) {
	t.Helper()
	return StartAPIServerWithConfig(t, api.ServerConfig{}, register)
}

// StartAPIServerWithConfig is StartAPIServer with an explicit config.
func StartAPIServerWithConfig(t *testing.T, cfg api.ServerConfig, register func(r *api.Router, apiSrv *api.Server)) (addr string, done func()) {
	t.Helper()
	apiSrv := api.New("127.0.0.1:0", cfg, slog.Default())
	if register != nil {
		register(apiSrv.Router(), apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}

	done = func() {
		apiSrv.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return apiSrv.Addr(), done
}

// StaticView serves a fixed View.
type StaticView input.View

func (v StaticView) View() input.View { return input.View(v) }
