package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server for the capture API. Write and idle timeouts
// are generous because document submissions carry multi-megabyte multipart
// bodies from slow mobile uplinks.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
