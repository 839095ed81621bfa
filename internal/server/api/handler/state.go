package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/netpad/apitypes"
	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/server/api"
)

// ViewSource publishes the state of the last control loop tick.
type ViewSource interface {
	View() input.View
}

// State returns a handler reporting the reconciled controller state.
func State(src ViewSource) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		b, err := json.Marshal(StateResponse(src.View()))
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// StateResponse converts a View to its wire form.
func StateResponse(v input.View) apitypes.StateResponse {
	out := apitypes.StateResponse{
		Controls:         make(map[string]bool, input.NumControls),
		LStick:           apitypes.Stick{X: v.Sticks[input.StickLeft].X, Y: v.Sticks[input.StickLeft].Y},
		RStick:           apitypes.Stick{X: v.Sticks[input.StickRight].X, Y: v.Sticks[input.StickRight].Y},
		Active:           v.Active.Label(),
		Presses:          v.Presses,
		TransportHealthy: v.TransportHealthy,
		TouchEnabled:     v.TouchEnabled,
	}
	for _, c := range input.Controls() {
		out.Controls[c.Label()] = v.Effective[c]
	}
	return out
}
