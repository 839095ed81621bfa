package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Alia5/netpad/apitypes"
	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/server/api"
)

// Messages returned for rejected payloads.
const (
	MsgNoBody      = "No JSON body"
	MsgInvalidJSON = "Invalid JSON"
)

var statusOK = mustJSON(apitypes.StatusResponse{Status: "OK"})

// Controller returns a handler that stages a controller payload.
// Error logging is centralized in the API server; this handler only returns errors.
func Controller(rx *input.Receiver) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if err := applyPayload(rx, req.Body); err != nil {
			return err
		}
		res.JSON = statusOK
		return nil
	}
}

func applyPayload(rx *input.Receiver, body []byte) error {
	if len(body) == 0 {
		return api.BadRequest(MsgNoBody)
	}
	if err := rx.Apply(body); err != nil {
		var perr *input.ParseError
		if errors.As(err, &perr) {
			return api.BadRequest(MsgInvalidJSON)
		}
		return err
	}
	return nil
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
