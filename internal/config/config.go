// Package config loads the search engine's process-level configuration:
// a worker-count override and the progress-reporting cadence. It keeps
// the device config layer's shape — an optional .env file in the
// project root, overridden by environment variables, cached once into a
// package-level struct rather than re-read on every call.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SearchConfig holds process-wide defaults for the search driver.
type SearchConfig struct {
	// WorkerOverride forces the worker count when > 0; 0 means "let the
	// driver pick via its own heuristic" (spec section 4.F.1).
	WorkerOverride int

	// ProgressIntervalChecks overrides the "every P checks" progress
	// cadence when > 0.
	ProgressIntervalChecks int64
}

var (
	searchConfig *SearchConfig
	configLoaded bool
)

// LoadSearchConfig reads SEEDSEARCH_WORKERS and
// SEEDSEARCH_PROGRESS_INTERVAL, first from a .env file in the project
// root and then from the process environment (which wins on conflict).
func LoadSearchConfig() (*SearchConfig, error) {
	if searchConfig != nil && configLoaded {
		return searchConfig, nil
	}

	cfg := &SearchConfig{}

	projectRoot := findProjectRoot()
	envPath := filepath.Join(projectRoot, ".env")
	if data, err := os.ReadFile(envPath); err == nil {
		parseEnvFile(string(data), cfg)
	}

	if v := os.Getenv("SEEDSEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WorkerOverride = n
		}
	}
	if v := os.Getenv("SEEDSEARCH_PROGRESS_INTERVAL"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.ProgressIntervalChecks = n
		}
	}

	searchConfig = cfg
	configLoaded = true
	return cfg, nil
}

func parseEnvFile(content string, cfg *SearchConfig) {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "SEEDSEARCH_WORKERS":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.WorkerOverride = n
			}
		case "SEEDSEARCH_PROGRESS_INTERVAL":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
				cfg.ProgressIntervalChecks = n
			}
		}
	}
}

func findProjectRoot() string {
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
		return cwd
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return cwd
		}
		cwd = parent
	}
}

// GetWorkerOverride returns the configured worker-count override, or 0
// if none is set.
func GetWorkerOverride() int {
	cfg, err := LoadSearchConfig()
	if err != nil {
		return 0
	}
	return cfg.WorkerOverride
}
