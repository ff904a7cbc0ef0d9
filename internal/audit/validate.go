// File path: internal/audit/validate.go
package audit

import (
	"log/slog"
	"strings"
)

// headerRowOffset converts a 0-based record index into the spreadsheet
// row number it came from: one for the header row plus one for 1-based
// counting.
const headerRowOffset = 2

// Issue flags a problem with a single record. Row carries spreadsheet
// numbering so an auditor can locate the cell in the source workbook.
type Issue struct {
	Row        int    `json:"row"`
	QuestionID string `json:"Question ID"`
	Issue      string `json:"issue"`
}

const issueMissingEvidence = "Missing Baseline Evidence"

// ValidateOption configures a validation pass.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	logger *slog.Logger
}

// WithValidateLogger enables row-level diagnostics on the given logger.
// Validation is silent without it.
func WithValidateLogger(logger *slog.Logger) ValidateOption {
	return func(cfg *validateConfig) {
		cfg.logger = logger
	}
}

// ValidateEntries scans records for missing Baseline Evidence. Evidence
// is sufficient when, after trimming and collapsing line breaks, it is
// non-empty and not a textual placeholder for absence ("nan"/"none",
// case-insensitive). A record whose Conformity Level is already
// Full Conformity is exempt regardless of its evidence text. Issues are
// returned in input order; input records are never mutated.
func ValidateEntries(records []Record, opts ...ValidateOption) (issues []Issue, opErr *Error) {
	defer guard(&opErr)
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	issues = make([]Issue, 0)
	for i, rec := range records {
		evidence := collapseEvidence(rec.String(ColBaselineEvidence))
		level := strings.TrimSpace(rec.String(ColConformityLevel))
		exempt := strings.EqualFold(level, LevelFull)
		sufficient := exempt || hasEvidence(evidence)
		if cfg.logger != nil {
			cfg.logger.Debug(
				"validate: row inspected",
				"row", i+headerRowOffset,
				"question_id", rec.String(ColQuestionID),
				"evidence_present", sufficient,
				"exempt", exempt,
			)
		}
		if sufficient {
			continue
		}
		issues = append(issues, Issue{
			Row:        i + headerRowOffset,
			QuestionID: rec.String(ColQuestionID),
			Issue:      issueMissingEvidence,
		})
	}
	return issues, nil
}

// collapseEvidence trims the cell and folds embedded line breaks into
// single spaces so multi-line cells compare like single-line ones.
func collapseEvidence(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

func hasEvidence(collapsed string) bool {
	if collapsed == "" {
		return false
	}
	lowered := strings.ToLower(collapsed)
	return lowered != "nan" && lowered != "none"
}
