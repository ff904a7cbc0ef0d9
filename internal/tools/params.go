// File path: internal/tools/params.go
package tools

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/nicodishanthj/Auditral_phase1/internal/audit"
)

// Parameter shapes for the five tools. Decoding is strict: unknown
// fields and mistyped values are rejected before any core logic runs,
// and a missing records field is distinguished from an empty one.

type loadParams struct {
	Path      string `json:"path"`
	SheetName string `json:"sheet_name"`
}

func (p *loadParams) validate() *audit.Error {
	if strings.TrimSpace(p.Path) == "" {
		return audit.Errorf(audit.KindValidation, "path is required")
	}
	if strings.TrimSpace(p.SheetName) == "" {
		return audit.Errorf(audit.KindValidation, "sheet_name is required")
	}
	return nil
}

type recordsParams struct {
	Records *[]audit.Record `json:"records"`
}

func (p *recordsParams) validate() *audit.Error {
	if p.Records == nil {
		return audit.Errorf(audit.KindValidation, "records is required")
	}
	return nil
}

func (p *recordsParams) records() []audit.Record {
	if p.Records == nil {
		return nil
	}
	return *p.Records
}

type exportParams struct {
	Records    *[]audit.Record `json:"records"`
	OutputPath string          `json:"output_path"`
}

func (p *exportParams) validate() *audit.Error {
	if p.Records == nil {
		return audit.Errorf(audit.KindValidation, "records is required")
	}
	if strings.TrimSpace(p.OutputPath) == "" {
		return audit.Errorf(audit.KindValidation, "output_path is required")
	}
	return nil
}

func (p *exportParams) records() []audit.Record {
	if p.Records == nil {
		return nil
	}
	return *p.Records
}

// decodeParams strictly decodes a raw parameters object into the given
// shape. Decode failures surface as validation errors so the dispatch
// layer can answer with a client error.
func decodeParams(raw json.RawMessage, into any) *audit.Error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(into); err != nil {
		return audit.Errorf(audit.KindValidation, "invalid parameters: %w", err)
	}
	return nil
}
