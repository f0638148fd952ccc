package entity

import "time"

// RowStatus classifies one input's outcome.
type RowStatus string

const (
	StatusComplete RowStatus = "complete"
	StatusPartial  RowStatus = "partial"
	StatusMissing  RowStatus = "missing"
	StatusFailed   RowStatus = "failed"
)

const (
	ErrCodeFetchFailed    = "fetch_failed"
	ErrCodeHTTPStatus     = "http_status"
	ErrCodeUpstreamStatus = "upstream_status"
	ErrCodeCanceled       = "canceled"
)

// Classify derives a status from a row's data fields.
func Classify(data []Field) RowStatus {
	missing := 0
	for _, f := range data {
		if f.IsMissing() {
			missing++
		}
	}
	switch {
	case missing == 0:
		return StatusComplete
	case missing == len(data):
		return StatusMissing
	default:
		return StatusPartial
	}
}

// BatchReport summarises one assembler run.
type BatchReport struct {
	Kind       Kind      `json:"kind"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Total    int `json:"total"`
	Complete int `json:"complete"`
	Partial  int `json:"partial"`
	Missing  int `json:"missing"`
	Failed   int `json:"failed"`
	// Unkeyed counts obtained rows without a film id; they are not stored.
	Unkeyed int `json:"unkeyed"`

	FailedInputs []string `json:"failed_inputs"`
}

// OK reports whether every input produced a document.
func (r BatchReport) OK() bool {
	return r.Failed == 0
}
