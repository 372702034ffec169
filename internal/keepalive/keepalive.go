// Package keepalive runs the liveness-probe HTTP endpoint and the optional
// self-ping loop that keeps free hosting platforms from idling the process.
package keepalive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Server is the probe endpoint. It answers 200 OK on /, /health and /ping
// and 404 for everything else; it carries no other routes.
type Server struct {
	srv *http.Server
}

func NewServer(addr string) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the probe handler.
func Handler() http.Handler {
	mux := http.NewServeMux()
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
	mux.HandleFunc("/health", ok)
	mux.HandleFunc("/ping", ok)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		ok(w, r)
	})
	return mux
}

// Start serves in the background. A serve failure is logged, not fatal: the
// bot keeps running without its probe endpoint.
func (s *Server) Start() {
	go func() {
		slog.Info("Keepalive server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Keepalive server stopped", "error", err)
		}
	}()
}

// Shutdown drains the probe server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// SelfPing hits url every interval until ctx ends. Failures are retried on
// the next tick; the loop never takes the process down.
func SelfPing(ctx context.Context, url string, interval time.Duration) {
	if interval < 30*time.Second {
		interval = 30 * time.Second
	}
	client := &http.Client{Timeout: 10 * time.Second}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				resp, err := client.Get(url)
				if err != nil {
					slog.Debug("Self-ping failed", "url", url, "error", err)
					continue
				}
				_, _ = io.CopyN(io.Discard, resp.Body, 64)
				resp.Body.Close()
			}
		}
	}()
}
