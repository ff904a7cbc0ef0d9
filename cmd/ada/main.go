// File path: cmd/ada/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nicodishanthj/Auditral_phase1/internal/api"
	"github.com/nicodishanthj/Auditral_phase1/internal/common"
	"github.com/nicodishanthj/Auditral_phase1/internal/llm"
	"github.com/nicodishanthj/Auditral_phase1/internal/sqlite"
)

func main() {
	logger := common.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("auditral: .env file not loaded", "error", err)
	} else {
		logger.Info("auditral: environment loaded from .env")
	}

	addr := flag.String("addr", ":8081", "listen address")
	dataDir := flag.String("data-dir", defaultDataDir(), "directory holding audit workbooks and report files")
	dbPath := flag.String("db", "", "path to the run-history SQLite database (empty uses AUDITRAL_DB_PATH or the default)")
	historyLimit := flag.Int("history-limit", 0, "maximum run-history entries returned by /api/runs (0 uses the default)")

	autoStartDefault := false
	if env := strings.TrimSpace(os.Getenv("AUDITRAL_AUTOSTART")); env != "" {
		if parsed, err := strconv.ParseBool(env); err == nil {
			autoStartDefault = parsed
		}
	}
	autoStartModel := flag.Bool("auto-start-model", autoStartDefault, "automatically launch a local Ollama model runtime")

	flag.Parse()

	logger.Info("auditral: startup initiated", "addr", *addr, "data_dir", *dataDir)

	if *autoStartModel {
		services, serviceErr := startModelRuntime(ctx, logger)
		if serviceErr != nil {
			logger.Error("auditral: failed to launch model runtime", "error", serviceErr)
			fmt.Println("model runtime startup error:", serviceErr)
			os.Exit(1)
		}
		defer stopManagedServices(context.Background(), services, logger)
	}

	history, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("auditral: run-history store unavailable", "error", err)
		fmt.Println("run history error:", err)
		os.Exit(1)
	}
	defer history.Close()

	provider := llm.NewProvider()
	logger.Info("auditral: llm provider ready", "provider", provider.Name())

	cfg := api.Config{DataDir: *dataDir}
	if *historyLimit > 0 {
		cfg.HistoryLimit = *historyLimit
	}
	server, err := api.NewServer(provider, history, &cfg)
	if err != nil {
		logger.Error("auditral: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logger.Info("auditral: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("auditral: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("auditral: server stopped", "error", err)
			fmt.Println("server stopped:", err)
		}
	case <-ctx.Done():
		logger.Info("auditral: shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("auditral: graceful shutdown failed", "error", err)
		}
	}
}

func defaultDataDir() string {
	if env := strings.TrimSpace(os.Getenv("AUDITRAL_DATA_DIR")); env != "" {
		return env
	}
	return filepath.Join("attack_data")
}
