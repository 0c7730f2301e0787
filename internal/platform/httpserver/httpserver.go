// Package httpserver builds the process HTTP server with hardened defaults.
package httpserver

import (
	"net/http"
	"time"
)

// New creates an *http.Server bound to addr with the given handler.
// WriteTimeout exceeds the in-router request timeout so the timeout handler
// can still write its response.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
