// File path: internal/audit/classify.go
package audit

import "strings"

// Columns the pipeline reads and writes by name. Any other column is
// carried through untouched.
const (
	ColQuestionID       = "Question ID"
	ColObservation      = "Observation"
	ColBaselineEvidence = "Baseline Evidence"
	ColConformityLevel  = "Conformity Level"
)

// Conformity levels assigned by AssignConformity.
const (
	LevelFull    = "Full Conformity"
	LevelPartial = "Partial Conformity"
	LevelNone    = "No Conformity"
	LevelNA      = "N/A"
)

// AssignConformity classifies every record by comparing its Observation
// against its Baseline Evidence and returns a new sequence with the
// Conformity Level column set. Output order and length match the input
// exactly; input records are never mutated.
func AssignConformity(records []Record) (out []Record, opErr *Error) {
	defer guard(&opErr)
	out = make([]Record, 0, len(records))
	for _, rec := range records {
		observation := stringField(rec, ColObservation)
		evidence := stringField(rec, ColBaselineEvidence)
		updated := rec.Clone()
		updated.Set(ColConformityLevel, conformityLevel(observation, evidence))
		out = append(out, NormalizeRecord(updated))
	}
	return out, nil
}

// conformityLevel implements the classification decision tree. The
// branches are ordered by priority: missing observation, missing
// evidence, substring containment, word overlap, then no conformity.
func conformityLevel(observation, evidence string) string {
	if strings.TrimSpace(observation) == "" {
		return LevelNA
	}
	if strings.TrimSpace(evidence) == "" {
		return LevelNone
	}
	obs := strings.ToLower(strings.TrimSpace(observation))
	base := strings.ToLower(strings.TrimSpace(evidence))
	if strings.Contains(obs, base) || strings.Contains(base, obs) {
		return LevelFull
	}
	obsWords := wordSet(obs)
	baseWords := wordSet(base)
	overlap := 0
	for word := range obsWords {
		if _, ok := baseWords[word]; ok {
			overlap++
		}
	}
	threshold := len(baseWords)
	if threshold > 3 {
		threshold = 3
	}
	if overlap > 0 && overlap >= threshold {
		return LevelPartial
	}
	return LevelNone
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, word := range strings.Fields(s) {
		out[word] = struct{}{}
	}
	return out
}

// stringField returns the column as a string, treating absent, nil and
// non-string cells as empty. Only free-text cells are match candidates;
// a numeric observation classifies as if it were blank.
func stringField(rec Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
