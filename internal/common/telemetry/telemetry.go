// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"expvar"
	"strings"
	"sync"
	"time"
)

var (
	initOnce sync.Once

	dispatchTotal     *expvar.Map
	dispatchErrors    *expvar.Map
	dispatchLatencyMS *expvar.Map

	rowsLoadedTotal   *expvar.Int
	rowsExportedTotal *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		dispatchTotal = expvar.NewMap("auditral_tool_dispatch_total")
		dispatchErrors = expvar.NewMap("auditral_tool_dispatch_errors")
		dispatchLatencyMS = expvar.NewMap("auditral_tool_dispatch_latency_ms")

		rowsLoadedTotal = expvar.NewInt("auditral_rows_loaded_total")
		rowsExportedTotal = expvar.NewInt("auditral_rows_exported_total")
	})
}

// RecordDispatch counts one tool invocation and its latency, keyed by
// tool name. Error outcomes are counted separately.
func RecordDispatch(tool, status string, elapsed time.Duration) {
	ensureInit()
	key := metricKey(tool)
	dispatchTotal.Add(key, 1)
	if status != "success" {
		dispatchErrors.Add(key, 1)
	}
	if elapsed > 0 {
		dispatchLatencyMS.Add(key, elapsed.Milliseconds())
	}
}

// RecordRowsLoaded counts rows returned by the sheet loader.
func RecordRowsLoaded(rows int) {
	ensureInit()
	if rows > 0 {
		rowsLoadedTotal.Add(int64(rows))
	}
}

// RecordRowsExported counts rows written by the exporter.
func RecordRowsExported(rows int) {
	ensureInit()
	if rows > 0 {
		rowsExportedTotal.Add(int64(rows))
	}
}

func metricKey(tool string) string {
	key := strings.TrimSpace(strings.ToLower(tool))
	if key == "" {
		return "unknown"
	}
	return strings.ReplaceAll(key, " ", "_")
}
