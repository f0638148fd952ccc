package entity

import "time"

// Record is the outcome for exactly one input.
type Record[R Row] struct {
	Input     string    `json:"input"`
	Row       R         `json:"row"`
	Status    RowStatus `json:"status"`
	ErrorCode string    `json:"error_code,omitempty"`
	ErrorMsg  string    `json:"error_msg,omitempty"`
	// HTTPStatus is set when the document request got a non-2xx answer.
	HTTPStatus int `json:"http_status,omitempty"`
}

// Table is an ordered, fully materialised set of records with one schema.
type Table[R Row] struct {
	Kind       Kind        `json:"kind"`
	Columns    []string    `json:"columns"`
	Records    []Record[R] `json:"records"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}

func NewTable[R Row](kind Kind, columns []string, size int) *Table[R] {
	return &Table[R]{
		Kind:    kind,
		Columns: columns,
		Records: make([]Record[R], 0, size),
	}
}

func (t *Table[R]) Append(rec Record[R]) {
	t.Records = append(t.Records, rec)
}

func (t *Table[R]) Rows() []R {
	rows := make([]R, len(t.Records))
	for i, rec := range t.Records {
		rows[i] = rec.Row
	}
	return rows
}

// Storable returns the rows of every obtained document that carries a film
// id, in input order, plus the inputs whose row had no id to store under.
func (t *Table[R]) Storable() (rows []R, unkeyed []string) {
	rows = make([]R, 0, len(t.Records))
	for _, rec := range t.Records {
		if rec.Status == StatusFailed {
			continue
		}
		if rec.Row.Key() == "" {
			unkeyed = append(unkeyed, rec.Input)
			continue
		}
		rows = append(rows, rec.Row)
	}
	return rows, unkeyed
}

// Cells returns the table body as strings, with missing fields rendered as
// the given placeholder.
func (t *Table[R]) Cells(missing string) [][]string {
	out := make([][]string, len(t.Records))
	for i, rec := range t.Records {
		vals := rec.Row.Values()
		cells := make([]string, len(vals))
		for j, f := range vals {
			if v, ok := f.Get(); ok {
				cells[j] = v
			} else {
				cells[j] = missing
			}
		}
		out[i] = cells
	}
	return out
}

func (t *Table[R]) Report() BatchReport {
	r := BatchReport{
		Kind:         t.Kind,
		StartedAt:    t.StartedAt.UTC(),
		FinishedAt:   t.FinishedAt.UTC(),
		Total:        len(t.Records),
		FailedInputs: []string{},
	}
	for _, rec := range t.Records {
		switch rec.Status {
		case StatusComplete:
			r.Complete++
		case StatusPartial:
			r.Partial++
		case StatusMissing:
			r.Missing++
		case StatusFailed:
			r.Failed++
			r.FailedInputs = append(r.FailedInputs, rec.Input)
			continue
		}
		if rec.Row.Key() == "" {
			r.Unkeyed++
		}
	}
	return r
}
