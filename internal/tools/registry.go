// File path: internal/tools/registry.go
package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nicodishanthj/Auditral_phase1/internal/audit"
	"github.com/nicodishanthj/Auditral_phase1/internal/common"
	"github.com/nicodishanthj/Auditral_phase1/internal/common/telemetry"
)

// Tool names exposed by the dispatch layer.
const (
	ToolLoadAuditSheet    = "load_audit_sheet"
	ToolValidateEntries   = "validate_entries"
	ToolAssignConformity  = "assign_conformity"
	ToolSummarizeFindings = "summarize_findings"
	ToolExportToExcel     = "export_to_excel"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Result is the tagged outcome handed back to the caller verbatim.
// Status reports success or error; on error Message is set and the
// stage payload fields carry their zero values.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	Records      *[]audit.Record `json:"records,omitempty"`
	RowCount     *int            `json:"row_count,omitempty"`
	Issues       *[]audit.Issue  `json:"issues,omitempty"`
	TotalIssues  *int            `json:"total_issues,omitempty"`
	Summary      *audit.Summary  `json:"summary,omitempty"`
	TotalRecords *int            `json:"total_records,omitempty"`
	OutputPath   string          `json:"output_path,omitempty"`
	RowsExported *int            `json:"rows_exported,omitempty"`
}

// Definition binds a tool name to its strict parameter decoding and
// core invocation.
type Definition struct {
	Name        string
	Description string
	invoke      func(ctx context.Context, raw json.RawMessage) (Result, *audit.Error)
}

// Registry maps tool names to definitions, in registration order.
type Registry struct {
	defs   []Definition
	byName map[string]Definition
}

// NewRegistry builds the registry with the five audit tools.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Definition)}
	r.register(Definition{
		Name:        ToolLoadAuditSheet,
		Description: "Read a worksheet from an Excel workbook into audit records.",
		invoke:      invokeLoad,
	})
	r.register(Definition{
		Name:        ToolValidateEntries,
		Description: "Flag records with missing Baseline Evidence.",
		invoke:      invokeValidate,
	})
	r.register(Definition{
		Name:        ToolAssignConformity,
		Description: "Assign a Conformity Level to every record.",
		invoke:      invokeAssign,
	})
	r.register(Definition{
		Name:        ToolSummarizeFindings,
		Description: "Aggregate records into per-level counts and percentages.",
		invoke:      invokeSummarize,
	})
	r.register(Definition{
		Name:        ToolExportToExcel,
		Description: "Write audit records back to an Excel workbook.",
		invoke:      invokeExport,
	})
	return r
}

func (r *Registry) register(def Definition) {
	r.defs = append(r.defs, def)
	r.byName[def.Name] = def
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Name
	}
	return names
}

// Definitions returns the registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Dispatch validates the parameters for the named tool and invokes it.
// The returned error is non-nil only for dispatch-level problems
// (unknown tool, malformed parameters); core failures are reported
// inside the Result envelope so callers receive them as data.
func (r *Registry) Dispatch(ctx context.Context, tool string, params json.RawMessage) (Result, error) {
	logger := common.Logger()
	def, ok := r.byName[tool]
	if !ok {
		telemetry.RecordDispatch(tool, statusError, 0)
		return Result{}, audit.Errorf(audit.KindValidation, "tool %q not found, available tools: %v", tool, r.Names())
	}
	start := time.Now()
	result, invokeErr := def.invoke(ctx, params)
	elapsed := time.Since(start)
	if invokeErr != nil {
		telemetry.RecordDispatch(tool, statusError, elapsed)
		logger.Warn("tools: parameter validation failed", "tool", tool, "error", invokeErr)
		return Result{}, invokeErr
	}
	telemetry.RecordDispatch(tool, result.Status, elapsed)
	if result.Status == statusError {
		logger.Warn("tools: invocation failed", "tool", tool, "message", result.Message, "dur", elapsed)
	} else {
		logger.Debug("tools: invocation completed", "tool", tool, "dur", elapsed)
	}
	return result, nil
}

func invokeLoad(ctx context.Context, raw json.RawMessage) (Result, *audit.Error) {
	var params loadParams
	if err := decodeParams(raw, &params); err != nil {
		return Result{}, err
	}
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	records, err := audit.LoadSheet(params.Path, params.SheetName)
	if err != nil {
		return errorResult(err, func(r *Result) { r.Records = &[]audit.Record{} }), nil
	}
	telemetry.RecordRowsLoaded(len(records))
	count := len(records)
	return Result{Status: statusSuccess, Records: &records, RowCount: &count}, nil
}

func invokeValidate(ctx context.Context, raw json.RawMessage) (Result, *audit.Error) {
	var params recordsParams
	if err := decodeParams(raw, &params); err != nil {
		return Result{}, err
	}
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	issues, err := audit.ValidateEntries(params.records(), audit.WithValidateLogger(common.Logger()))
	if err != nil {
		return errorResult(err, func(r *Result) { r.Issues = &[]audit.Issue{} }), nil
	}
	total := len(issues)
	return Result{Status: statusSuccess, Issues: &issues, TotalIssues: &total}, nil
}

func invokeAssign(ctx context.Context, raw json.RawMessage) (Result, *audit.Error) {
	var params recordsParams
	if err := decodeParams(raw, &params); err != nil {
		return Result{}, err
	}
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	records, err := audit.AssignConformity(params.records())
	if err != nil {
		return errorResult(err, func(r *Result) { r.Records = &[]audit.Record{} }), nil
	}
	return Result{Status: statusSuccess, Records: &records}, nil
}

func invokeSummarize(ctx context.Context, raw json.RawMessage) (Result, *audit.Error) {
	var params recordsParams
	if err := decodeParams(raw, &params); err != nil {
		return Result{}, err
	}
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	summary, total, err := audit.SummarizeFindings(params.records())
	if err != nil {
		return errorResult(err, func(r *Result) { r.Summary = &audit.Summary{} }), nil
	}
	return Result{Status: statusSuccess, Summary: summary, TotalRecords: &total}, nil
}

func invokeExport(ctx context.Context, raw json.RawMessage) (Result, *audit.Error) {
	var params exportParams
	if err := decodeParams(raw, &params); err != nil {
		return Result{}, err
	}
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	rows, err := audit.ExportToExcel(params.records(), params.OutputPath)
	if err != nil {
		return errorResult(err, func(r *Result) { r.OutputPath = params.OutputPath }), nil
	}
	telemetry.RecordRowsExported(rows)
	return Result{Status: statusSuccess, OutputPath: params.OutputPath, RowsExported: &rows}, nil
}

func errorResult(err *audit.Error, decorate func(*Result)) Result {
	result := Result{Status: statusError, Message: err.Error()}
	if decorate != nil {
		decorate(&result)
	}
	return result
}
