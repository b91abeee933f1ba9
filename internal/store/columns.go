package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateLayout is the ISO calendar date format records expose.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// List scans a list column. Postgres arrays arrive in their text form ("{a,b}"),
// MySQL and SQLite lists as JSON ("[\"a\",\"b\"]"). NULL scans as an empty list.
type List []string

// Scan implements sql.Scanner.
func (l *List) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = List{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("%w: list column holds %T", ErrMapping, src)
	}

	values := []string{}
	if len(raw) > 0 {
		switch raw[0] {
		case '{':
			if err := pgtype.NewMap().Scan(pgtype.TextArrayOID, pgtype.TextFormatCode, raw, &values); err != nil {
				return fmt.Errorf("%w: text[] %q: %w", ErrMapping, raw, err)
			}
		case '[':
			if err := json.Unmarshal(raw, &values); err != nil {
				return fmt.Errorf("%w: json list %q: %w", ErrMapping, raw, err)
			}
		default:
			return fmt.Errorf("%w: list column holds %q", ErrMapping, raw)
		}
	}
	if values == nil {
		values = []string{}
	}
	*l = values
	return nil
}

// Date scans a DATE column into its ISO form. NULL scans as "".
type Date string

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(DateLayout))
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("%w: date column holds %T", ErrMapping, src)
	}
	return nil
}

func (d *Date) parse(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("%w: date %q", ErrMapping, s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return fmt.Errorf("%w: date %q: %w", ErrMapping, s, err)
	}
	*d = Date(t.Format(DateLayout))
	return nil
}

// Timestamp scans a TIMESTAMP/DATETIME column, normalized to UTC.
type Timestamp time.Time

// Scan implements sql.Scanner.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts = Timestamp(v.UTC())
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	}
	return fmt.Errorf("%w: timestamp column holds %T", ErrMapping, src)
}

func (ts *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = Timestamp(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("%w: timestamp %q", ErrMapping, s)
}

// Time returns the scanned instant.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// NullString writes "" as NULL. Optional text columns read NULL back as "".
func NullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullDate validates an ISO date and writes "" as NULL.
func NullDate(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, s)
	}
	return s, nil
}

// NullInt writes a nil pointer as NULL.
func NullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

// IntPtr converts a nullable integer column into an optional record field.
func IntPtr(v *int64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
