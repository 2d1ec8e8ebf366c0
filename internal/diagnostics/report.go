package diagnostics

import (
	"encoding/json"
	"errors"

	"github.com/sunholo/narrowlab/internal/patsyntax"
)

// Report is the canonical structured diagnostic emitted by the pattern
// engine, following the teacher's Report shape (internal/errors/report.go)
// generalized from AILANG's compiler phases to this module's single
// "pattern" phase.
type Report struct {
	Schema  string         `json:"schema"` // always "narrowlab.diagnostic/v1"
	Code    Code           `json:"code"`
	Phase   string         `json:"phase"` // always "pattern" in this module
	Message string         `json:"message"`
	Span    *patsyntax.Pos `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// New builds a Report anchored at node, filling severity-independent
// fields. Data may be nil.
func New(code Code, message string, node patsyntax.Node, data map[string]any) *Report {
	var span *patsyntax.Pos
	if node != nil {
		s := node.Span()
		span = &s
	}
	return &Report{
		Schema:  "narrowlab.diagnostic/v1",
		Code:    code,
		Phase:   "pattern",
		Message: message,
		Span:    span,
		Data:    data,
	}
}

// Severity reports this diagnostic's fixed severity.
func (r *Report) Severity() Severity { return SeverityOf(r.Code) }

// ReportError wraps a Report as an error, so structured diagnostics
// survive errors.As() unwrapping across a Go error-returning boundary.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown diagnostic"
	}
	return string(e.Rep.Code) + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if one is present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error, or returns nil for a nil Report.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders the Report with deterministic key order: top-level keys
// in struct field order, Data keys sorted.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
