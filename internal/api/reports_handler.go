// File path: internal/api/reports_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	chi "github.com/go-chi/chi/v5"

	"github.com/nicodishanthj/Auditral_phase1/internal/reports"
)

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	out, err := reports.List(s.dataDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReportFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	payload, err := reports.Get(s.dataDir, filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, fmt.Errorf("file %s not found", filename))
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
