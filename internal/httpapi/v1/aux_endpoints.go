package v1

import (
    "context"
    "net/http"
    "time"
)

const readyTimeout = 800 * time.Millisecond

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz pings the store when it supports it; the memory store is always ready.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
    if s.ready == nil { w.WriteHeader(http.StatusOK); return }
    ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
    defer cancel()
    if err := s.ready.Ready(ctx); err != nil {
        s.log.Warn("readiness check failed", "err", err)
        w.WriteHeader(http.StatusServiceUnavailable)
        return
    }
    w.WriteHeader(http.StatusOK)
}
