package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/ruleone/internal/scheduler"
)

// handleHealth is a liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// handleRefreshStatus returns the batch-refresh state machine snapshot
func (s *Server) handleRefreshStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

// handleRefreshTrigger starts a refresh run outside the cron schedule.
// The run executes in the background; poll /refresh/status for progress.
func (s *Server) handleRefreshTrigger(w http.ResponseWriter, r *http.Request) {
	if s.tracker.Snapshot().State == scheduler.StateRunning {
		s.writeJSON(w, http.StatusConflict, map[string]string{"error": "refresh already running"})
		return
	}

	go func() {
		if err := s.trigger(); err != nil {
			s.log.Error().Err(err).Msg("Triggered refresh failed")
		}
	}()

	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}
