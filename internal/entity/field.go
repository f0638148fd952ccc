package entity

import (
	"encoding/json"
	"strconv"
)

// Field is one extracted column value. The zero Field is the missing sentinel,
// which is distinct from a present empty string.
type Field struct {
	value string
	valid bool
}

// Missing is the "no value" marker.
var Missing = Field{}

func Value(s string) Field {
	return Field{value: s, valid: true}
}

func IntValue(n int64) Field {
	return Value(strconv.FormatInt(n, 10))
}

func FloatValue(f float64) Field {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.value, f.valid
}

func (f Field) IsMissing() bool {
	return !f.valid
}

// String returns the value, or "" when missing.
func (f Field) String() string {
	return f.value
}

// Ptr returns nil for a missing field so database drivers write NULL.
func (f Field) Ptr() *string {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

func (f Field) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *Field) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Missing
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = Value(s)
	return nil
}
