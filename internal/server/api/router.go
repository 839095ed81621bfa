package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// MaxBodyBytes limits request bodies. Controller payloads are well below it.
const MaxBodyBytes = 4 << 10

// Request is the handler view of an HTTP request.
type Request struct {
	Ctx    context.Context
	Method string
	Params map[string]string
	Query  url.Values
	Body   []byte
	Remote string
}

// Response is filled by handlers. JSON takes precedence over HTML; an empty
// response is answered with 204.
type Response struct {
	Status int
	JSON   string
	HTML   string
}

// HandlerFunc handles one request. Returned errors are logged and written
// by the server; use *Error to pick the status code.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// StreamHandlerFunc takes ownership of the connection, e.g. to upgrade it
// to a websocket. It returns when the stream ends.
type StreamHandlerFunc func(w http.ResponseWriter, r *http.Request, logger *slog.Logger) error

// Error is a handler error carrying an HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// BadRequest returns a 400 error with msg.
func BadRequest(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Errorf returns an error with the given status.
func Errorf(status int, format string, args ...any) error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Router registers handlers on the server's mux.
type Router struct {
	mux *mux.Router
	srv *Server
}

// Register adds h for method and path. Path variables use mux syntax
// ("/foo/{id}") and are passed in Request.Params.
func (r *Router) Register(method, path string, h HandlerFunc) {
	r.mux.Handle(path, r.srv.wrap(path, h)).Methods(method, http.MethodOptions)
}

// RegisterStream adds a GET stream handler for path.
func (r *Router) RegisterStream(path string, h StreamHandlerFunc) {
	r.mux.Handle(path, r.srv.wrapStream(path, h)).Methods(http.MethodGet, http.MethodOptions)
}
