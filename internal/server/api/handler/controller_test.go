package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/netpad/apiclient"
	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/server/api"
	"github.com/Alia5/netpad/internal/server/api/handler"
	handlerTest "github.com/Alia5/netpad/internal/testing"
)

func TestController(t *testing.T) {
	tests := []struct {
		name             string
		payload          any
		expectedResponse string
		check            func(t *testing.T, snap input.NetworkSnapshot)
	}{
		{
			name:             "buttons and stick",
			payload:          `{"buttons":{"A":true},"lstick":{"x":-40,"y":250}}`,
			expectedResponse: `{"status":"OK"}`,
			check: func(t *testing.T, snap input.NetworkSnapshot) {
				assert.True(t, snap.Buttons[input.A])
				assert.Equal(t, input.Axis{X: -40, Y: 100}, snap.Sticks[input.StickLeft])
			},
		},
		{
			name:             "non-integer axes are clamped",
			payload:          `{"buttons":{"B":true},"rstick":{"x":1e3,"y":-12.7}}`,
			expectedResponse: `{"status":"OK"}`,
			check: func(t *testing.T, snap input.NetworkSnapshot) {
				assert.True(t, snap.Buttons[input.B])
				assert.Equal(t, input.Axis{X: 100, Y: -12}, snap.Sticks[input.StickRight])
			},
		},
		{
			name:             "empty object releases buttons",
			payload:          `{}`,
			expectedResponse: `{"status":"OK"}`,
			check: func(t *testing.T, snap input.NetworkSnapshot) {
				assert.False(t, snap.Held())
			},
		},
		{
			name:             "invalid json",
			payload:          `{"buttons":`,
			expectedResponse: `{"error":"Invalid JSON"}`,
			check: func(t *testing.T, snap input.NetworkSnapshot) {
				assert.False(t, snap.Held())
			},
		},
		{
			name:             "wrong type",
			payload:          `{"system":{"home":"yes"}}`,
			expectedResponse: `{"error":"Invalid JSON"}`,
		},
		{
			name:             "no body",
			payload:          nil,
			expectedResponse: `{"error":"No JSON body"}`,
		},
		{
			name:             "body too large",
			payload:          `{"buttons":{"A":true}}` + strings.Repeat(" ", api.MaxBodyBytes),
			expectedResponse: `{"error":"request body too large"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx := input.NewReceiver()
			addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
				r.Register(http.MethodPost, "/controller", handler.Controller(rx))
			})
			defer done()

			c := apiclient.NewTransport(addr)
			line, err := c.Do(http.MethodPost, "/controller", tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResponse, line)
			if tt.check != nil {
				tt.check(t, rx.Snapshot())
			}
		})
	}
}

func TestControllerStatusCodes(t *testing.T) {
	rx := input.NewReceiver()
	addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register(http.MethodPost, "/controller", handler.Controller(rx))
	})
	defer done()

	resp, err := http.Post("http://"+addr+"/controller", "application/json", strings.NewReader(`nope`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get("http://" + addr + "/controller")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestClientSend(t *testing.T) {
	rx := input.NewReceiver()
	addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register(http.MethodPost, "/controller", handler.Controller(rx))
	})
	defer done()

	c := apiclient.New(addr)
	_, err := c.Send(samplePayload())
	require.NoError(t, err)

	snap := rx.Snapshot()
	assert.True(t, snap.Buttons[input.ZR])
	assert.Equal(t, input.Axis{X: 0, Y: -60}, snap.Sticks[input.StickRight])
	assert.Equal(t, input.ButtonSource(input.ZR), snap.Marker.Source)
}
