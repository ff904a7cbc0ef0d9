// File path: internal/audit/summarize.go
package audit

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// LevelSummary is the aggregate for one conformity level.
type LevelSummary struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Summary maps each observed conformity level to its aggregate, keyed
// in order of first occurrence. It marshals as a JSON object in that
// order.
type Summary struct {
	levels []string
	byName map[string]LevelSummary
}

// Levels returns the observed level names in first-occurrence order.
func (s *Summary) Levels() []string {
	out := make([]string, len(s.levels))
	copy(out, s.levels)
	return out
}

// Get returns the aggregate for a level and whether the level was
// observed.
func (s *Summary) Get(level string) (LevelSummary, bool) {
	v, ok := s.byName[level]
	return v, ok
}

// Len returns the number of distinct levels observed.
func (s *Summary) Len() int {
	return len(s.levels)
}

func (s *Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, level := range s.levels {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(level)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(s.byName[level])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SummarizeFindings groups records by Conformity Level and computes a
// count and a percentage (two decimal places) per level. A record
// without the column, or with a blank value, counts under "N/A" — the
// same bucket the classifier assigns when there is nothing to observe.
// Counts across all levels always sum to the number of records.
func SummarizeFindings(records []Record) (summary *Summary, total int, opErr *Error) {
	defer guard(&opErr)
	total = len(records)
	summary = &Summary{byName: make(map[string]LevelSummary)}
	for _, rec := range records {
		level := strings.TrimSpace(rec.String(ColConformityLevel))
		if level == "" {
			level = LevelNA
		}
		entry, seen := summary.byName[level]
		if !seen {
			summary.levels = append(summary.levels, level)
		}
		entry.Count++
		summary.byName[level] = entry
	}
	for _, level := range summary.levels {
		entry := summary.byName[level]
		if total > 0 {
			entry.Percentage = roundPercentage(float64(entry.Count) / float64(total) * 100)
		}
		summary.byName[level] = entry
	}
	return summary, total, nil
}

func roundPercentage(pct float64) float64 {
	return math.Round(pct*100) / 100
}
