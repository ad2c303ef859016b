package bootstrap

import (
	"context"
	"net"
	"net/http"
	"time"
)

// NewServer builds the API server. Request contexts are cancelled as soon as
// Shutdown starts so long-lived streams return instead of holding it open.
func NewServer(addr string, handler http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
