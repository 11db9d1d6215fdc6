package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout is the day-first layout used in tables and statements
const DisplayDateLayout = "02/01/2006"

var transactionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	DisplayDateLayout,
}

// TransactionDate holds a creation date that may arrive either as a
// timestamp or as free text. Text that cannot be parsed is kept in Raw
// and shown verbatim.
type TransactionDate struct {
	Time time.Time
	Raw  string
}

// NewTransactionDate wraps a timestamp
func NewTransactionDate(t time.Time) TransactionDate {
	return TransactionDate{Time: t}
}

// ParseTransactionDate parses value with the known layouts, falling back to raw text
func ParseTransactionDate(value string) TransactionDate {
	value = strings.TrimSpace(value)
	if value == "" {
		return TransactionDate{}
	}

	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return TransactionDate{Time: t}
		}
	}

	return TransactionDate{Raw: value}
}

// IsZero reports whether neither a timestamp nor text is set
func (d TransactionDate) IsZero() bool {
	return d.Time.IsZero() && d.Raw == ""
}

// Display formats the date for tables
func (d TransactionDate) Display() string {
	if !d.Time.IsZero() {
		return d.Time.Format(DisplayDateLayout)
	}
	return d.Raw
}

func (d TransactionDate) String() string {
	return d.Display()
}

// MarshalJSON writes timestamps as RFC 3339 and raw text as-is
func (d TransactionDate) MarshalJSON() ([]byte, error) {
	if !d.Time.IsZero() {
		return json.Marshal(d.Time.Format(time.RFC3339))
	}
	if d.Raw != "" {
		return json.Marshal(d.Raw)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts null, a date string in any known layout or free text,
// and numbers as Unix milliseconds. Any other JSON value is kept as raw text.
func (d *TransactionDate) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*d = TransactionDate{}
		return nil
	}

	var value string
	if err := json.Unmarshal(trimmed, &value); err == nil {
		*d = ParseTransactionDate(value)
		return nil
	}

	var millis json.Number
	if err := json.Unmarshal(trimmed, &millis); err == nil {
		if ms, err := millis.Int64(); err == nil {
			*d = TransactionDate{Time: time.UnixMilli(ms).UTC()}
			return nil
		}
		if ms, err := millis.Float64(); err == nil {
			*d = TransactionDate{Time: time.UnixMilli(int64(ms)).UTC()}
			return nil
		}
	}

	*d = TransactionDate{Raw: string(trimmed)}
	return nil
}

// GormDataType stores the date in the dialect's timestamp column type
func (TransactionDate) GormDataType() string {
	return "time"
}

// Value implements driver.Valuer
func (d TransactionDate) Value() (driver.Value, error) {
	if !d.Time.IsZero() {
		return d.Time, nil
	}
	if d.Raw != "" {
		return nil, fmt.Errorf("createdAt %q is not a date", d.Raw)
	}
	return nil, nil
}

// Scan implements sql.Scanner
func (d *TransactionDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = TransactionDate{}
	case time.Time:
		*d = TransactionDate{Time: v}
	case string:
		*d = ParseTransactionDate(v)
	case []byte:
		*d = ParseTransactionDate(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TransactionDate", value)
	}
	return nil
}
