// File path: internal/audit/summarize_test.go
package audit

import (
	"encoding/json"
	"reflect"
	"testing"
)

func classifiedRecord(questionID, level string) Record {
	rec := NewRecord()
	rec.Set(ColQuestionID, questionID)
	rec.Set(ColConformityLevel, level)
	return rec
}

func TestSummarizeFindingsCountsAndPercentages(t *testing.T) {
	records := []Record{
		classifiedRecord("Q1", LevelFull),
		classifiedRecord("Q2", LevelNone),
		classifiedRecord("Q3", LevelFull),
	}
	summary, total, err := SummarizeFindings(records)
	if err != nil {
		t.Fatalf("SummarizeFindings: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	full, ok := summary.Get(LevelFull)
	if !ok || full.Count != 2 {
		t.Fatalf("full = %+v, ok = %v", full, ok)
	}
	if full.Percentage != 66.67 {
		t.Fatalf("full percentage = %v, want 66.67", full.Percentage)
	}
	none, _ := summary.Get(LevelNone)
	if none.Count != 1 || none.Percentage != 33.33 {
		t.Fatalf("none = %+v", none)
	}
}

func TestSummarizeFindingsInsertionOrder(t *testing.T) {
	records := []Record{
		classifiedRecord("Q1", LevelPartial),
		classifiedRecord("Q2", LevelFull),
		classifiedRecord("Q3", LevelPartial),
		classifiedRecord("Q4", LevelNA),
	}
	summary, _, err := SummarizeFindings(records)
	if err != nil {
		t.Fatalf("SummarizeFindings: %v", err)
	}
	want := []string{LevelPartial, LevelFull, LevelNA}
	if got := summary.Levels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("levels = %v, want %v", got, want)
	}

	data, marshalErr := json.Marshal(summary)
	if marshalErr != nil {
		t.Fatalf("marshal summary: %v", marshalErr)
	}
	wantJSON := `{"Partial Conformity":{"count":2,"percentage":50},"Full Conformity":{"count":1,"percentage":25},"N/A":{"count":1,"percentage":25}}`
	if string(data) != wantJSON {
		t.Fatalf("summary JSON = %s, want %s", data, wantJSON)
	}
}

func TestSummarizeFindingsDefaultsMissingLevel(t *testing.T) {
	unclassified := NewRecord()
	unclassified.Set(ColQuestionID, "Q1")
	blank := classifiedRecord("Q2", "  ")
	summary, total, err := SummarizeFindings([]Record{unclassified, blank})
	if err != nil {
		t.Fatalf("SummarizeFindings: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d", total)
	}
	na, ok := summary.Get(LevelNA)
	if !ok || na.Count != 2 {
		t.Fatalf("N/A bucket = %+v, ok = %v", na, ok)
	}
}

func TestSummarizeFindingsPartitionClosure(t *testing.T) {
	records := []Record{
		classifiedRecord("Q1", LevelFull),
		classifiedRecord("Q2", LevelPartial),
		classifiedRecord("Q3", LevelNone),
		classifiedRecord("Q4", LevelNone),
		NewRecord(),
	}
	summary, total, err := SummarizeFindings(records)
	if err != nil {
		t.Fatalf("SummarizeFindings: %v", err)
	}
	sum := 0
	for _, level := range summary.Levels() {
		entry, _ := summary.Get(level)
		sum += entry.Count
		if entry.Percentage < 0 || entry.Percentage > 100 {
			t.Fatalf("percentage out of bounds for %s: %v", level, entry.Percentage)
		}
	}
	if sum != total {
		t.Fatalf("counts sum to %d, total is %d", sum, total)
	}
}

func TestSummarizeFindingsEmptyInput(t *testing.T) {
	summary, total, err := SummarizeFindings(nil)
	if err != nil {
		t.Fatalf("SummarizeFindings: %v", err)
	}
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
	if summary.Len() != 0 {
		t.Fatalf("summary has %d levels, want 0", summary.Len())
	}
	data, marshalErr := json.Marshal(summary)
	if marshalErr != nil {
		t.Fatalf("marshal: %v", marshalErr)
	}
	if string(data) != "{}" {
		t.Fatalf("empty summary JSON = %s", data)
	}
}
