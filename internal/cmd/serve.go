package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/netpad/internal/configpaths"
	"github.com/Alia5/netpad/internal/display"
	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/layout"
	"github.com/Alia5/netpad/internal/log"
	"github.com/Alia5/netpad/internal/server/api"
	"github.com/Alia5/netpad/internal/server/api/handler"
	"github.com/Alia5/netpad/internal/touch"
	"github.com/Alia5/netpad/internal/transport"
)

// AppTitle is shown in the tray, notifications and the info page.
const AppTitle = "netpad"

// BuildInfo is bound by main so commands can report the version.
type BuildInfo struct {
	Version string
}

// Serve runs the controller: touch panel, HTTP API, control loop and HID
// transport.
type Serve struct {
	API   api.ServerConfig `embed:"" prefix:"api."`
	HID   transport.Config `embed:"" prefix:"hid."`
	Touch touch.Config     `embed:"" prefix:"touch."`

	Layout          string        `help:"Touch layout file (YAML, TOML or JSON); the built-in layout when empty" type:"path" env:"NETPAD_LAYOUT"`
	Tick            time.Duration `help:"Control loop tick interval" default:"5ms" env:"NETPAD_TICK"`
	DisplayInterval time.Duration `help:"Minimum time between status updates" default:"30ms" env:"NETPAD_DISPLAY_INTERVAL"`
	Pulse           time.Duration `help:"Duration of a single press" default:"40ms" env:"NETPAD_PULSE"`
	PulseGap        time.Duration `help:"Released time between two presses of the same control" default:"8ms" env:"NETPAD_PULSE_GAP"`
	StaleAfter      time.Duration `help:"Release network input after this long without a payload (0 keeps it)" default:"0s" env:"NETPAD_STALE_AFTER"`

	Status bool `help:"Show a live status line on the terminal" env:"NETPAD_STATUS"`
	Tray   bool `help:"Show the active input in the system tray" env:"NETPAD_TRAY"`
	Notify bool `help:"Desktop notification when the HID transport goes down or recovers" env:"NETPAD_NOTIFY"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger, info BuildInfo) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := s.loadLayout()
	if err != nil {
		return err
	}

	var panel *touch.Panel
	if s.Touch.Device != "" {
		panel, err = touch.Open(s.Touch, logger)
		if err != nil {
			return fmt.Errorf("open touch panel: %w", err)
		}
		defer panel.Close()
		go func() {
			if err := panel.Run(ctx); err != nil {
				logger.Error("touch panel stopped", "device", s.Touch.Device, "error", err)
			}
		}()
	} else {
		logger.Info("touch input disabled")
	}

	w, err := transport.Open(s.HID, logger, rawLogger)
	if err != nil {
		return fmt.Errorf("open hid transport: %w", err)
	}
	pad := transport.NewPad(w, rawLogger, logger)
	defer func() {
		if err := pad.Close(); err != nil {
			logger.Warn("closing hid transport", "error", err)
		}
	}()
	logger.Info("HID transport ready", "kind", s.HID.Kind)

	emitter := input.NewEmitter(pad, input.EmitterOptions{PulseDuration: s.Pulse, PulseGap: s.PulseGap}, logger)
	rx := input.NewReceiver()

	var sampler *input.TouchSampler
	if panel != nil {
		sampler = input.NewTouchSampler(panel, l, true)
	}

	var projectors display.Multi
	var term *display.Terminal
	if s.Status {
		term = display.NewTerminal(os.Stdout)
		projectors = append(projectors, term)
	}
	if s.Tray {
		projectors = append(projectors, display.NewTray(AppTitle))
	}
	if s.Notify {
		projectors = append(projectors, display.NewNotifier(AppTitle, logger))
	}
	var projector input.Projector
	if len(projectors) > 0 {
		projector = projectors
	}

	loop := input.NewLoop(input.LoopConfig{
		TickInterval:    s.Tick,
		DisplayInterval: s.DisplayInterval,
		StaleAfter:      s.StaleAfter,
	}, input.LoopDeps{
		Touch:      sampler,
		Receiver:   rx,
		Reconciler: input.NewReconciler(emitter, logger),
		Health:     emitter,
		Projector:  projector,
	}, logger)

	if err := s.resolveAPIKey(logger); err != nil {
		return err
	}
	apiSrv := api.New(s.API.Addr, s.API, logger)
	RegisterRoutes(apiSrv.Router(), rx, loop, info.Version)
	if err := apiSrv.Start(); err != nil {
		return fmt.Errorf("start api: %w", err)
	}
	defer apiSrv.Close()

	run := loop.Run
	if s.Tray {
		err = display.RunTray(ctx, AppTitle, run)
	} else {
		err = run(ctx)
	}
	if term != nil {
		term.Finish()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Shutting down")
	return nil
}

// RegisterRoutes wires every API endpoint.
func RegisterRoutes(r *api.Router, rx *input.Receiver, view handler.ViewSource, version string) {
	r.Register(http.MethodGet, "/", handler.Root(AppTitle))
	r.Register(http.MethodPost, "/controller", handler.Controller(rx))
	r.RegisterStream("/controller/ws", handler.ControllerStream(rx))
	r.Register(http.MethodGet, "/state", handler.State(view))
	r.Register(http.MethodGet, "/ping", handler.Ping(version))
}

func (s *Serve) loadLayout() (input.Layout, error) {
	if s.Layout == "" {
		return input.DefaultLayout(), nil
	}
	l, err := layout.Load(s.Layout)
	if err != nil {
		return input.Layout{}, fmt.Errorf("load layout: %w", err)
	}
	return l, nil
}

func (s *Serve) resolveAPIKey(logger *slog.Logger) error {
	if !s.API.Auth {
		return nil
	}
	path := s.API.KeyFile
	if path == "" {
		var err error
		if path, err = configpaths.DefaultKeyFile(); err != nil {
			return fmt.Errorf("locate api key: %w", err)
		}
	}
	key, created, err := configpaths.LoadOrCreateKey(path)
	if err != nil {
		return fmt.Errorf("api key: %w", err)
	}
	if created {
		logger.Info("Generated API key", "file", path)
	}
	s.API.APIKey = key
	return nil
}
