package handler

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/Alia5/netpad/internal/server/api"
)

const rootPage = `<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>%[1]s</title></head>
<body>
<h1>%[1]s</h1>
<p>POST /controller endpoint ready</p>
<h2>JSON Format:</h2>
<pre>{
  "buttons": {"A": true, "B": false, "X": false, "Y": false},
  "lstick": {"x": 0, "y": 0},
  "rstick": {"x": 0, "y": 0},
  "shoulder": {"L": false, "R": false, "ZL": false, "ZR": false},
  "system": {"plus": false, "minus": false, "home": false}
}</pre>
<p>Sticks: x,y range -100 to 100, clamped. Positive y is down: send y=-100 to push a stick up.</p>
<p>Also available: GET /state, GET /ping, GET /controller/ws (websocket)</p>
</body></html>
`

// Root serves the information page.
func Root(title string) api.HandlerFunc {
	page := fmt.Sprintf(rootPage, html.EscapeString(title))
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		res.HTML = page
		return nil
	}
}
