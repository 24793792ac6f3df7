package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/reolink-tools/fwcheck/pkg/checker"
	"github.com/reolink-tools/fwcheck/pkg/defaults"
	"github.com/reolink-tools/fwcheck/pkg/errors"
	"github.com/reolink-tools/fwcheck/pkg/serializer"
)

// handleDefault serves the service index at /.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Device    string   `json:"device"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Device:    s.device.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes: []string{
			"GET /v1/check",
			"GET /health",
			"GET /ready",
			"GET /metrics",
		},
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleCheck handles GET /v1/check. It serves the most recent check result;
// with ?refresh=true, or when no check has completed yet, it runs one
// on demand.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"allowed": "GET"})
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"

	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last != nil && !refresh {
		serializer.RespondJSON(w, http.StatusOK, last)
		return
	}

	res, err := s.runCheck(r.Context())
	if err != nil {
		s.writeCheckError(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, res)
}

// runCheck performs one firmware check and caches the result.
func (s *Server) runCheck(ctx context.Context) (*checker.Result, error) {
	checkCtx, cancel := context.WithTimeout(ctx, defaults.CheckTimeout)
	defer cancel()

	res, err := s.checker.Check(checkCtx, s.device)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	return res, nil
}
