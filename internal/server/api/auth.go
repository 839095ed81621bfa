package api

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/blake2b"
)

// KeyHeader carries the API key. Websocket clients that cannot set headers
// may pass the key as the "key" query parameter instead.
const KeyHeader = "X-API-Key"

func keyDigest(key string) [blake2b.Size256]byte {
	return blake2b.Sum256([]byte(key))
}

// authorized compares digests so the comparison time does not depend on the
// key length.
func (a *Server) authorized(r *http.Request) bool {
	if a.keyDigest == nil {
		return true
	}
	got := r.Header.Get(KeyHeader)
	if got == "" {
		got = r.URL.Query().Get("key")
	}
	d := keyDigest(got)
	return subtle.ConstantTimeCompare(d[:], a.keyDigest[:]) == 1
}

func (a *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+KeyHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authorized(r) {
			a.logger.Warn("api unauthorized", "remote", r.RemoteAddr, "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
