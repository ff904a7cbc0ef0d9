// File path: internal/api/run_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nicodishanthj/Auditral_phase1/internal/common"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Message: "OK"})
}

// handleCreateSession is a stub: there is no real session tracking,
// every caller shares the default session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: "default"})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: run decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Tool) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("tool required"))
		return
	}
	logger.Info("api: tool run requested", "tool", req.Tool)

	start := time.Now()
	result, err := s.registry.Dispatch(r.Context(), req.Tool, req.Params)
	elapsed := time.Since(start)
	if err != nil {
		// Unknown tool or malformed parameters: a client error, not a
		// core outcome.
		s.recordRun(r, req.Tool, "error", err.Error(), elapsed)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.recordRun(r, req.Tool, result.Status, result.Message, elapsed)
	writeJSON(w, http.StatusOK, result)
}

// recordRun persists the invocation outcome; history is best effort and
// never fails a request.
func (s *Server) recordRun(r *http.Request, tool, status, message string, elapsed time.Duration) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordRun(r.Context(), tool, status, message, elapsed); err != nil {
		common.Logger().Warn("api: run history write failed", "tool", tool, "error", err)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	runs, err := s.history.RecentRuns(r.Context(), s.historyLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	if entries == nil {
		entries = []common.LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
