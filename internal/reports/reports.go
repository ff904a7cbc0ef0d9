// File path: internal/reports/reports.go
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nicodishanthj/Auditral_phase1/internal/common"
)

// reportMarker selects which JSON files in the data directory count as
// reports.
const reportMarker = "REPORT"

// List reads every report file from dir and returns their decoded JSON
// payloads in filename order. A missing directory yields an empty list;
// unreadable or unparsable files are skipped with a warning.
func List(dir string) ([]map[string]any, error) {
	logger := common.Logger()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []map[string]any{}, nil
		}
		return nil, fmt.Errorf("read report directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || !strings.Contains(name, reportMarker) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		payload, err := readJSON(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("reports: skipping unreadable report", "file", name, "error", err)
			continue
		}
		out = append(out, payload)
	}
	return out, nil
}

// Get returns the decoded JSON payload of a single data file by name.
// The name must not escape the data directory.
func Get(dir, filename string) (map[string]any, error) {
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return nil, fmt.Errorf("invalid file name: %s", filename)
	}
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("stat %s: %w", filename, err)
	}
	return readJSON(path)
}

func readJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return payload, nil
}
