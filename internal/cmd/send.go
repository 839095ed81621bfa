package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Alia5/netpad/apiclient"
	"github.com/Alia5/netpad/apitypes"
	"github.com/Alia5/netpad/internal/input"
)

// ClientFlags select the netpad instance to talk to.
type ClientFlags struct {
	Addr    string        `help:"netpad API address (host:port or URL)" default:"localhost:8080" env:"NETPAD_ADDR"`
	APIKey  string        `help:"API key sent in the X-API-Key header" env:"NETPAD_API_KEY"`
	Timeout time.Duration `help:"Request timeout" default:"5s" env:"NETPAD_TIMEOUT"`
}

func (f ClientFlags) client() *apiclient.Client {
	return apiclient.NewWithConfig(f.Addr, &apiclient.Config{
		DialTimeout:  f.Timeout,
		ReadTimeout:  f.Timeout,
		WriteTimeout: f.Timeout,
		APIKey:       f.APIKey,
	})
}

// Send posts one controller payload. Listed controls are held, every other
// button is released; sticks keep their value unless given.
type Send struct {
	ClientFlags `embed:""`

	Controls []string      `arg:"" optional:"" help:"Controls to hold: a, b, x, y, l, r, zl, zr, plus, minus, home"`
	LStick   string        `help:"Left stick as x,y in -100..100" placeholder:"X,Y"`
	RStick   string        `help:"Right stick as x,y in -100..100" placeholder:"X,Y"`
	Tap      time.Duration `help:"Release the listed controls again after this long"`
}

// Run is called by Kong when the send command is executed.
func (s *Send) Run(logger *slog.Logger) error {
	p, err := s.payload()
	if err != nil {
		return err
	}
	c := s.client()
	ctx := context.Background()
	if _, err := c.SendCtx(ctx, p); err != nil {
		return err
	}
	logger.Debug("payload sent", "addr", s.Addr, "controls", s.Controls)
	if s.Tap <= 0 {
		return nil
	}
	time.Sleep(s.Tap)
	_, err = c.SendCtx(ctx, apitypes.ControllerPayload{})
	return err
}

func (s *Send) payload() (apitypes.ControllerPayload, error) {
	var held []input.Control
	for _, name := range s.Controls {
		for _, part := range strings.Split(name, ",") {
			if part == "" {
				continue
			}
			c, err := input.ParseControl(part)
			if err != nil {
				return apitypes.ControllerPayload{}, err
			}
			held = append(held, c)
		}
	}
	p := BuildPayload(held)
	var err error
	if p.LStick, err = parseStick(s.LStick); err != nil {
		return p, fmt.Errorf("lstick: %w", err)
	}
	if p.RStick, err = parseStick(s.RStick); err != nil {
		return p, fmt.Errorf("rstick: %w", err)
	}
	return p, nil
}

// BuildPayload returns a payload holding exactly the given controls. Groups
// without a held control are omitted, which releases them on the server.
func BuildPayload(held []input.Control) apitypes.ControllerPayload {
	var p apitypes.ControllerPayload
	for _, c := range held {
		switch c {
		case input.A, input.B, input.X, input.Y:
			if p.Buttons == nil {
				p.Buttons = &apitypes.ButtonsGroup{}
			}
		case input.L, input.R, input.ZL, input.ZR:
			if p.Shoulder == nil {
				p.Shoulder = &apitypes.ShoulderGroup{}
			}
		case input.Plus, input.Minus, input.Home:
			if p.System == nil {
				p.System = &apitypes.SystemGroup{}
			}
		}
		switch c {
		case input.A:
			p.Buttons.A = true
		case input.B:
			p.Buttons.B = true
		case input.X:
			p.Buttons.X = true
		case input.Y:
			p.Buttons.Y = true
		case input.L:
			p.Shoulder.L = true
		case input.R:
			p.Shoulder.R = true
		case input.ZL:
			p.Shoulder.ZL = true
		case input.ZR:
			p.Shoulder.ZR = true
		case input.Plus:
			p.System.Plus = true
		case input.Minus:
			p.System.Minus = true
		case input.Home:
			p.System.Home = true
		}
	}
	return p
}

func parseStick(s string) (*apitypes.StickGroup, error) {
	if s == "" {
		return nil, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return nil, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return nil, err
	}
	return &apitypes.StickGroup{X: x, Y: y}, nil
}

// State prints the reconciled state of a running instance.
type State struct {
	ClientFlags `embed:""`
}

// Run is called by Kong when the state command is executed.
func (s *State) Run() error {
	st, err := s.client().State()
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, st)
}

// Ping checks that an instance is reachable.
type Ping struct {
	ClientFlags `embed:""`
}

// Run is called by Kong when the ping command is executed.
func (p *Ping) Run() error {
	out, err := p.client().Ping()
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
