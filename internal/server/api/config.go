package api

import "time"

// ServerConfig represents the HTTP API configuration of the serve command.
type ServerConfig struct {
	Addr         string        `help:"HTTP API listen address" default:":8080" env:"NETPAD_API_ADDR"`
	Auth         bool          `help:"Require an API key in the X-API-Key header" env:"NETPAD_API_AUTH"`
	KeyFile      string        `help:"API key file (default: api.key in the key directory)" env:"NETPAD_API_KEY_FILE"`
	ReadTimeout  time.Duration `help:"Time allowed to read a request" default:"5s" env:"NETPAD_API_READ_TIMEOUT"`
	WriteTimeout time.Duration `help:"Time allowed to write a response" default:"5s" env:"NETPAD_API_WRITE_TIMEOUT"`

	// APIKey is resolved from KeyFile at startup. Empty disables
	// authentication.
	APIKey string `kong:"-"`
}
