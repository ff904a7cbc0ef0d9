// File path: cmd/ada/services.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nicodishanthj/Auditral_phase1/internal/common/process"
)

// startModelRuntime launches a local Ollama server so the agent has a
// model to talk to without any cloud credentials. The readiness probe
// hits the Ollama tags endpoint; OPENAI_ENDPOINT is pointed at the
// OpenAI-compatible surface when not already configured.
func startModelRuntime(ctx context.Context, logger *slog.Logger) ([]*process.ManagedService, error) {
	binary, err := ollamaBinary()
	if err != nil {
		return nil, err
	}

	if err := ensureEnvDefault("OLLAMA_API_BASE", "http://127.0.0.1:11434"); err != nil {
		return nil, err
	}
	base := strings.TrimRight(os.Getenv("OLLAMA_API_BASE"), "/")
	if err := ensureEnvDefault("OPENAI_ENDPOINT", base+"/v1"); err != nil {
		return nil, err
	}

	services := make([]*process.ManagedService, 0, 1)
	svc, err := process.Start(ctx, process.ServiceConfig{
		Name:         "ollama",
		Command:      binary,
		Args:         []string{"serve"},
		Env:          []string{fmt.Sprintf("OLLAMA_HOST=%s", hostOf(base))},
		ReadyURL:     base + "/api/tags",
		ReadyTimeout: 2 * time.Minute,
		StopTimeout:  5 * time.Second,
		Logger:       logger.With("component", "launcher", "service", "ollama"),
	})
	if err != nil {
		stopManagedServices(context.Background(), services, logger)
		return nil, err
	}
	services = append(services, svc)
	return services, nil
}

func stopManagedServices(ctx context.Context, services []*process.ManagedService, logger *slog.Logger) {
	for i := len(services) - 1; i >= 0; i-- {
		svc := services[i]
		if svc == nil {
			continue
		}
		if err := svc.Stop(ctx); err != nil && logger != nil {
			logger.Warn("launcher: service shutdown returned error", "error", err)
		}
	}
}

func ollamaBinary() (string, error) {
	candidate := strings.TrimSpace(os.Getenv("OLLAMA_BIN"))
	if candidate == "" {
		candidate = "ollama"
	}
	path, err := process.BinaryPath(candidate)
	if err != nil {
		return "", fmt.Errorf("resolve ollama binary: %w", err)
	}
	return path, nil
}

func ensureEnvDefault(key, value string) error {
	if _, ok := os.LookupEnv(key); ok {
		return nil
	}
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// hostOf strips the scheme from an endpoint for OLLAMA_HOST, which
// expects host:port.
func hostOf(endpoint string) string {
	trimmed := strings.TrimSpace(endpoint)
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
	}
	if trimmed == "" {
		return "127.0.0.1:11434"
	}
	return trimmed
}
