// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"expvar"
	"net/http"
	"os"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nicodishanthj/Auditral_phase1/internal/agent"
	"github.com/nicodishanthj/Auditral_phase1/internal/common"
	"github.com/nicodishanthj/Auditral_phase1/internal/llm"
	"github.com/nicodishanthj/Auditral_phase1/internal/sqlite"
	"github.com/nicodishanthj/Auditral_phase1/internal/tools"
)

type Server struct {
	router   chi.Router
	registry *tools.Registry
	provider llm.Provider
	agent    *agent.Runner
	history  *sqlite.Store
	dataDir  string

	historyLimit int
}

// Config controls where the API server reads report files from and how
// much run history it returns.
type Config struct {
	DataDir      string
	HistoryLimit int
}

// DefaultConfig returns the standard configuration used when no
// overrides are provided.
func DefaultConfig() Config {
	dataDir := "attack_data"
	if env := strings.TrimSpace(os.Getenv("AUDITRAL_DATA_DIR")); env != "" {
		dataDir = env
	}
	return Config{DataDir: dataDir, HistoryLimit: 50}
}

// Merge overlays non-empty configuration values from the override onto
// the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.DataDir) != "" {
		result.DataDir = strings.TrimSpace(override.DataDir)
	}
	if override.HistoryLimit > 0 {
		result.HistoryLimit = override.HistoryLimit
	}
	return result
}

// NewServer wires the tool registry, agent runner and optional run
// history store behind the HTTP routes. A nil history store disables
// the /api/runs listing but not dispatching.
func NewServer(provider llm.Provider, history *sqlite.Store, cfg *Config) (*Server, error) {
	logger := common.Logger()
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	registry := tools.NewRegistry()
	providerName := "unknown"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info(
		"api: building server",
		"tools", len(registry.Names()),
		"provider", providerName,
		"data_dir", configuration.DataDir,
		"history", history != nil,
	)
	srv := &Server{
		router:       chi.NewRouter(),
		registry:     registry,
		provider:     provider,
		agent:        agent.NewRunner(provider, registry),
		history:      history,
		dataDir:      configuration.DataDir,
		historyLimit: configuration.HistoryLimit,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(middleware.Recoverer)
	s.router.Use(corsMiddleware)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/api/status", s.handleStatus)
	s.router.Post("/api/create_session", s.handleCreateSession)
	s.router.Post("/api/run", s.handleRun)
	s.router.Post("/api/agent", s.handleAgent)
	s.router.Get("/api/reports", s.handleReports)
	s.router.Get("/api/reports/{filename}", s.handleReportFile)
	s.router.Get("/api/runs", s.handleRuns)
	s.router.Get("/api/logs", s.handleLogs)
	s.router.Method(http.MethodGet, "/debug/vars", expvar.Handler())
}

// corsMiddleware allows any origin so a local UI can talk to the API;
// tighten in production deployments.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
