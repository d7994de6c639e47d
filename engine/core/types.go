package core

import (
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Record
// -----------------------------------------------------------------------------

// Record is one validated roster entry. Row is the 1-based position in the
// source sheet, kept for diagnostics only.
type Record struct {
	Name      string `json:"name"`
	BirthDate Date   `json:"birth_date"`
	Row       int    `json:"row"`
}

// -----------------------------------------------------------------------------
// Row diagnostics
// -----------------------------------------------------------------------------

type DiagnosticReason string

const (
	ReasonMissingName DiagnosticReason = "missing_name"
	ReasonInvalidDate DiagnosticReason = "invalid_date"
)

// RowDiagnostic notes one skipped input row. Row-level problems never
// escalate to run-level errors.
type RowDiagnostic struct {
	Row    int              `json:"row"`
	Name   string           `json:"name,omitempty"`
	Reason DiagnosticReason `json:"reason"`
}

func (d RowDiagnostic) Message() string {
	switch d.Reason {
	case ReasonMissingName:
		return "missing name"
	case ReasonInvalidDate:
		return "missing or invalid date of birth"
	default:
		return string(d.Reason)
	}
}

// -----------------------------------------------------------------------------
// Delivery outcome
// -----------------------------------------------------------------------------

// DeliveryOutcome describes the final state of a delivery attempt sequence.
type DeliveryOutcome struct {
	Success          bool      `json:"success"`
	MessageID        string    `json:"message_id,omitempty"`
	ErrorDescription string    `json:"error_description,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Attempts         int       `json:"attempts"`
}

// -----------------------------------------------------------------------------
// Pipeline result
// -----------------------------------------------------------------------------

// PipelineResult is the sole externally observable output of one pipeline
// run. It is always populated, even when the run fails before ingestion
// completes.
type PipelineResult struct {
	RunID            string           `json:"run_id"`
	RecordsProcessed int              `json:"records_processed"`
	Matches          []Record         `json:"matches"`
	NotificationSent bool             `json:"notification_sent"`
	Errors           []string         `json:"errors"`
	Skipped          []RowDiagnostic  `json:"skipped,omitempty"`
	Outcome          *DeliveryOutcome `json:"outcome,omitempty"`
}

func NewPipelineResult() *PipelineResult {
	return &PipelineResult{
		RunID:   uuid.NewString(),
		Matches: []Record{},
		Errors:  []string{},
	}
}

// AddError records a run-level error. Anything appended here may be logged
// verbatim downstream, so callers must pass values through RedactString or
// RedactError first when the text could carry credentials.
func (r *PipelineResult) AddError(desc string) {
	if desc == "" {
		return
	}
	r.Errors = append(r.Errors, desc)
}

func (r *PipelineResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// MatchedNames returns the matched names in source row order.
func (r *PipelineResult) MatchedNames() []string {
	names := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		names = append(names, m.Name)
	}
	return names
}
