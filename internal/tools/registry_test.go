// File path: internal/tools/registry_test.go
package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nicodishanthj/Auditral_phase1/internal/audit"
)

func testRecord(t *testing.T, questionID, observation, evidence string) audit.Record {
	t.Helper()
	rec := audit.NewRecord()
	rec.Set(audit.ColQuestionID, questionID)
	rec.Set(audit.ColObservation, observation)
	rec.Set(audit.ColBaselineEvidence, evidence)
	return rec
}

func recordsPayload(t *testing.T, records []audit.Record) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"records": records})
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	return raw
}

func TestDispatchUnknownTool(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Dispatch(context.Background(), "summarise", nil)
	if err == nil {
		t.Fatal("expected an error for an unknown tool")
	}
	if audit.KindOf(err) != audit.KindValidation {
		t.Fatalf("kind = %q, want %q", audit.KindOf(err), audit.KindValidation)
	}
	if !strings.Contains(err.Error(), ToolLoadAuditSheet) {
		t.Fatalf("error should list available tools, got %q", err.Error())
	}
}

func TestDispatchRejectsUnknownParamFields(t *testing.T) {
	registry := NewRegistry()
	raw := json.RawMessage(`{"path":"a.xlsx","sheet_name":"Sheet1","shee":"typo"}`)
	_, err := registry.Dispatch(context.Background(), ToolLoadAuditSheet, raw)
	if err == nil {
		t.Fatal("expected an error for an unknown parameter field")
	}
	if audit.KindOf(err) != audit.KindValidation {
		t.Fatalf("kind = %q, want %q", audit.KindOf(err), audit.KindValidation)
	}
}

func TestDispatchMissingRequiredParams(t *testing.T) {
	registry := NewRegistry()
	cases := []struct {
		tool string
		raw  json.RawMessage
	}{
		{ToolLoadAuditSheet, json.RawMessage(`{"path":"a.xlsx"}`)},
		{ToolLoadAuditSheet, json.RawMessage(`{"sheet_name":"Sheet1"}`)},
		{ToolValidateEntries, nil},
		{ToolAssignConformity, json.RawMessage(`{}`)},
		{ToolSummarizeFindings, json.RawMessage(`{}`)},
		{ToolExportToExcel, json.RawMessage(`{"records":[]}`)},
	}
	for _, tc := range cases {
		if _, err := registry.Dispatch(context.Background(), tc.tool, tc.raw); err == nil {
			t.Errorf("%s with params %s: expected a validation error", tc.tool, tc.raw)
		}
	}
}

func TestDispatchEmptyRecordsIsNotMissing(t *testing.T) {
	registry := NewRegistry()
	result, err := registry.Dispatch(context.Background(), ToolValidateEntries, json.RawMessage(`{"records":[]}`))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Status != statusSuccess {
		t.Fatalf("status = %q, want %q", result.Status, statusSuccess)
	}
	if result.Issues == nil || len(*result.Issues) != 0 {
		t.Fatalf("issues = %v, want empty slice", result.Issues)
	}
	if result.TotalIssues == nil || *result.TotalIssues != 0 {
		t.Fatalf("total_issues = %v, want 0", result.TotalIssues)
	}
}

func TestLoadMissingFileReturnsErrorEnvelope(t *testing.T) {
	registry := NewRegistry()
	raw := json.RawMessage(`{"path":"does/not/exist.xlsx","sheet_name":"Sheet1"}`)
	result, err := registry.Dispatch(context.Background(), ToolLoadAuditSheet, raw)
	if err != nil {
		t.Fatalf("core failures must stay inside the envelope, got %v", err)
	}
	if result.Status != statusError {
		t.Fatalf("status = %q, want %q", result.Status, statusError)
	}
	if result.Message == "" {
		t.Fatal("expected a message describing the failure")
	}
	if result.Records == nil || len(*result.Records) != 0 {
		t.Fatalf("records = %v, want empty slice", result.Records)
	}
	encoded, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		t.Fatalf("marshal result: %v", marshalErr)
	}
	if !strings.Contains(string(encoded), `"records":[]`) {
		t.Fatalf("error envelope should serialize an empty records list, got %s", encoded)
	}
}

func TestExportErrorEnvelopeKeepsOutputPath(t *testing.T) {
	registry := NewRegistry()
	raw := json.RawMessage(`{"records":[],"output_path":"missing-dir/out.xlsx"}`)
	result, err := registry.Dispatch(context.Background(), ToolExportToExcel, raw)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Status != statusError {
		t.Fatalf("status = %q, want %q", result.Status, statusError)
	}
	if result.OutputPath != "missing-dir/out.xlsx" {
		t.Fatalf("output_path = %q, want the requested path", result.OutputPath)
	}
}

func TestDispatchPipeline(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "audit.xlsx")
	seed := []audit.Record{
		testRecord(t, "Q1", "MFA enabled for all users", "MFA enabled"),
		testRecord(t, "Q2", "Backups run weekly to offsite storage", "Backups run nightly to offsite storage"),
		testRecord(t, "Q3", "No relevant controls found", "Patch management process documented"),
		testRecord(t, "Q4", "Firewall rules reviewed", ""),
	}
	if _, exportErr := audit.ExportToExcel(seed, source); exportErr != nil {
		t.Fatalf("seed workbook: %v", exportErr)
	}

	registry := NewRegistry()
	ctx := context.Background()

	loadRaw, _ := json.Marshal(map[string]string{"path": source, "sheet_name": "Sheet1"})
	loaded, err := registry.Dispatch(ctx, ToolLoadAuditSheet, loadRaw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Status != statusSuccess {
		t.Fatalf("load status = %q: %s", loaded.Status, loaded.Message)
	}
	if loaded.RowCount == nil || *loaded.RowCount != len(seed) {
		t.Fatalf("row_count = %v, want %d", loaded.RowCount, len(seed))
	}
	records := *loaded.Records

	validated, err := registry.Dispatch(ctx, ToolValidateEntries, recordsPayload(t, records))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if validated.TotalIssues == nil || *validated.TotalIssues != 1 {
		t.Fatalf("total_issues = %v, want 1", validated.TotalIssues)
	}
	issue := (*validated.Issues)[0]
	if issue.QuestionID != "Q4" || issue.Row != 5 {
		t.Fatalf("issue = %+v, want Q4 at spreadsheet row 5", issue)
	}

	assigned, err := registry.Dispatch(ctx, ToolAssignConformity, recordsPayload(t, records))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	levels := make(map[string]string)
	for _, rec := range *assigned.Records {
		levels[rec.String(audit.ColQuestionID)] = rec.String(audit.ColConformityLevel)
	}
	want := map[string]string{
		"Q1": audit.LevelFull,
		"Q2": audit.LevelPartial,
		"Q3": audit.LevelNone,
		"Q4": audit.LevelNone,
	}
	for id, level := range want {
		if levels[id] != level {
			t.Errorf("%s level = %q, want %q", id, levels[id], level)
		}
	}

	summarized, err := registry.Dispatch(ctx, ToolSummarizeFindings, recordsPayload(t, *assigned.Records))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summarized.TotalRecords == nil || *summarized.TotalRecords != len(seed) {
		t.Fatalf("total_records = %v, want %d", summarized.TotalRecords, len(seed))
	}
	none, ok := summarized.Summary.Get(audit.LevelNone)
	if !ok || none.Count != 2 || none.Percentage != 50 {
		t.Fatalf("No Conformity bucket = %+v (ok=%v), want count 2 at 50%%", none, ok)
	}

	output := filepath.Join(dir, "REPORT_audit.xlsx")
	exportRaw, _ := json.Marshal(map[string]any{"records": *assigned.Records, "output_path": output})
	exported, err := registry.Dispatch(ctx, ToolExportToExcel, exportRaw)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.RowsExported == nil || *exported.RowsExported != len(seed) {
		t.Fatalf("rows_exported = %v, want %d", exported.RowsExported, len(seed))
	}

	reloaded, loadErr := audit.LoadSheet(output, "Sheet1")
	if loadErr != nil {
		t.Fatalf("reload exported workbook: %v", loadErr)
	}
	if len(reloaded) != len(seed) {
		t.Fatalf("reloaded %d records, want %d", len(reloaded), len(seed))
	}
	if got := reloaded[0].String(audit.ColConformityLevel); got != audit.LevelFull {
		t.Fatalf("reloaded Q1 level = %q, want %q", got, audit.LevelFull)
	}
}

func TestRegistryNamesOrder(t *testing.T) {
	registry := NewRegistry()
	want := []string{
		ToolLoadAuditSheet,
		ToolValidateEntries,
		ToolAssignConformity,
		ToolSummarizeFindings,
		ToolExportToExcel,
	}
	got := registry.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, def := range registry.Definitions() {
		if def.Description == "" {
			t.Errorf("tool %s has no description", def.Name)
		}
	}
}
