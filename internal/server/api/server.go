// Package api serves the HTTP control API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/blake2b"
)

// Server is the HTTP API server.
type Server struct {
	addr      string
	config    ServerConfig
	logger    *slog.Logger
	mux       *mux.Router
	router    *Router
	http      *http.Server
	ln        net.Listener
	keyDigest *[blake2b.Size256]byte

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a server listening on addr once started.
func New(addr string, config ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &Server{
		addr:   addr,
		config: config,
		logger: logger,
		mux:    mux.NewRouter(),
		ctx:    ctx,
		cancel: cancel,
	}
	if config.APIKey != "" {
		d := keyDigest(config.APIKey)
		a.keyDigest = &d
	}
	a.router = &Router{mux: a.mux, srv: a}
	a.mux.Use(mux.CORSMethodMiddleware(a.mux))
	a.mux.Use(a.cors)
	a.mux.Use(a.auth)
	a.mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.logger.Warn("api unknown path", "path", r.URL.Path)
		writeError(w, http.StatusNotFound, "unknown path")
	})
	a.mux.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return a
}

// Router returns the router so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound address once started, the configured one before.
func (a *Server) Addr() string {
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Handler exposes the routed handler, mainly for tests.
func (a *Server) Handler() http.Handler { return a.mux }

// Start listens on the configured address and serves in the background.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.http = &http.Server{
		Handler:      a.mux,
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return a.ctx },
		ErrorLog:     slog.NewLogLogger(a.logger.Handler(), slog.LevelDebug),
	}
	a.logger.Info("API listening", "addr", ln.Addr().String(), "auth", a.keyDigest != nil)
	go func() {
		if err := a.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("API serve error", "error", err)
			return
		}
		a.logger.Info("API server stopped")
	}()
	return nil
}

// Close stops the API server and ends open streams.
func (a *Server) Close() {
	a.cancel()
	if a.http != nil {
		_ = a.http.Close()
	}
}

func (a *Server) wrap(path string, h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := a.logger.With("remote", r.RemoteAddr)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				reqLogger.Warn("api body too large", "path", path, "limit", tooLarge.Limit)
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
			return
		}

		req := &Request{
			Ctx:    r.Context(),
			Method: r.Method,
			Params: mux.Vars(r),
			Query:  r.URL.Query(),
			Body:   body,
			Remote: r.RemoteAddr,
		}
		res := &Response{}
		if err := h(req, res, reqLogger); err != nil {
			status := http.StatusInternalServerError
			var apiErr *Error
			if errors.As(err, &apiErr) {
				status = apiErr.Status
			}
			if status >= http.StatusInternalServerError {
				reqLogger.Error("api handler error", "path", path, "error", err)
			} else {
				reqLogger.Warn("api handler error", "path", path, "status", status, "error", err)
			}
			writeError(w, status, err.Error())
			return
		}
		reqLogger.Debug("api handler success", "path", path)
		writeResponse(w, res)
	})
}

func (a *Server) wrapStream(path string, h StreamHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		streamLogger := a.logger.With("remote", r.RemoteAddr)
		streamLogger.Info("api stream begin", "path", path)
		if err := h(w, r, streamLogger); err != nil {
			streamLogger.Error("api stream handler error", "path", path, "error", err)
		}
		streamLogger.Info("api stream end", "path", path)
	})
}

func writeResponse(w http.ResponseWriter, res *Response) {
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch {
	case res.JSON != "":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, res.JSON)
	case res.HTML != "":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, res.HTML)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	problem := map[string]string{"error": msg}
	problemJSON, _ := json.Marshal(problem)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(problemJSON)
}
