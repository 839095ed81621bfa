package apitypes

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Shared API structs used by both handlers and clients.

// ControllerPayload is the body of POST /controller and of every websocket
// message. A group that is absent (or null) is treated as all-released for
// buttons and as unchanged for sticks.
type ControllerPayload struct {
	Buttons  *ButtonsGroup  `json:"buttons,omitempty"`
	LStick   *StickGroup    `json:"lstick,omitempty"`
	RStick   *StickGroup    `json:"rstick,omitempty"`
	Shoulder *ShoulderGroup `json:"shoulder,omitempty"`
	System   *SystemGroup   `json:"system,omitempty"`
}

type ButtonsGroup struct {
	A bool `json:"A,omitempty"`
	B bool `json:"B,omitempty"`
	X bool `json:"X,omitempty"`
	Y bool `json:"Y,omitempty"`
}

// StickGroup axes range from -100 to 100; out-of-range values are clamped.
// Positive Y points down.
type StickGroup struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UnmarshalJSON accepts any JSON number for an axis. Fractions truncate
// toward zero and values beyond the int32 range saturate, so the receiver's
// clamp sees every number instead of a decode error.
func (g *StickGroup) UnmarshalJSON(data []byte) error {
	var raw struct {
		X json.Number `json:"x"`
		Y json.Number `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	x, err := axisNumber(raw.X)
	if err != nil {
		return err
	}
	y, err := axisNumber(raw.Y)
	if err != nil {
		return err
	}
	*g = StickGroup{X: x, Y: y}
	return nil
}

func axisNumber(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32, nil
	case f <= math.MinInt32:
		return math.MinInt32, nil
	}
	return int(f), nil
}

type ShoulderGroup struct {
	L  bool `json:"L,omitempty"`
	R  bool `json:"R,omitempty"`
	ZL bool `json:"ZL,omitempty"`
	ZR bool `json:"ZR,omitempty"`
}

type SystemGroup struct {
	Plus  bool `json:"plus,omitempty"`
	Minus bool `json:"minus,omitempty"`
	Home  bool `json:"home,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ApiError struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type Stick struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StateResponse is the body of GET /state.
type StateResponse struct {
	// Controls maps control labels ("A", "ZL", "+", "HOME", ...) to their
	// effective state.
	Controls         map[string]bool `json:"controls"`
	LStick           Stick           `json:"lstick"`
	RStick           Stick           `json:"rstick"`
	Active           string          `json:"active"`
	Presses          uint64          `json:"presses"`
	TransportHealthy bool            `json:"transportHealthy"`
	TouchEnabled     bool            `json:"touchEnabled"`
}
