// Package config defines the CLI structure and configuration for netpad.
package config

import (
	"github.com/Alia5/netpad/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"NETPAD_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"NETPAD_LOG_FILE"`
	RawFile string `help:"Raw HID report log file path (default: none)" env:"NETPAD_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config string `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"NETPAD_CONFIG"`

	Serve      cmd.Serve      `cmd:"" help:"Run the gamepad: touch panel, HTTP API and HID transport"`
	Send       cmd.Send       `cmd:"" help:"Send a controller payload to a running instance"`
	State      cmd.State      `cmd:"" help:"Print the controller state of a running instance"`
	Ping       cmd.Ping       `cmd:"" help:"Check that an instance is reachable"`
	Descriptor cmd.Descriptor `cmd:"" help:"Print the HID report descriptor or create the USB gadget"`
	Layout     cmd.Layout     `cmd:"" help:"Print or convert a touch layout"`
	Install    cmd.Install    `cmd:"" help:"Install netpad as a systemd service"`
	Uninstall  cmd.Uninstall  `cmd:"" help:"Remove the netpad systemd service"`
}
