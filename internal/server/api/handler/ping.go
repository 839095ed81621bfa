package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/netpad/apitypes"
	"github.com/Alia5/netpad/internal/server/api"
)

// ServerName identifies the API in ping responses.
const ServerName = "netpad"

// Ping returns a handler for the "ping" endpoint.
// It provides a minimal identity + version response.
func Ping(version string) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, logger *slog.Logger) error {
		if version == "" {
			version = "dev"
		}
		b, err := json.Marshal(apitypes.PingResponse{Server: ServerName, Version: version})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
