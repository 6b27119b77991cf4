package ntime

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// NTime represents a nullable time.Time.
// It can be used as a scan destination and can be marshalled to JSON.
type NTime struct {
	time    time.Time
	isValid bool // false when the time is null
}

// UnmarshalJSON parses an RFC3339 time string into a time.Time object
func (nt *NTime) UnmarshalJSON(b []byte) error {
	parsedTime, err := time.Parse(`"`+time.RFC3339+`"`, string(b))
	if err != nil {
		return err
	}
	*nt = NTime{parsedTime, true}
	return nil
}

// MarshalJSON implements the Marshaller interface and operates on values rather than pointers.
func (nt NTime) MarshalJSON() ([]byte, error) {
	if nt.isValid {
		return []byte(fmt.Sprintf("%q", nt.time.UTC().Format(time.RFC3339))), nil
	}
	return []byte("null"), nil
}

// Scan implements the Scanner interface; SQLite datetime columns surface as time.Time.
func (nt *NTime) Scan(value any) error {
	nt.time, nt.isValid = value.(time.Time)
	return nil
}

// Value implements the driver Valuer interface, storing times as RFC3339 strings.
func (nt NTime) Value() (driver.Value, error) {
	if nt.isValid {
		return driver.Value(nt.time.UTC().Format(time.RFC3339)), nil
	}
	return nil, nil
}

func Now() NTime {
	return NTime{time: time.Now().UTC(), isValid: true}
}

// FromTime wraps an existing time.Time in a valid NTime.
func FromTime(t time.Time) NTime {
	return NTime{time: t.UTC(), isValid: true}
}

func (nt NTime) Before(compared NTime) bool {
	return nt.time.Before(compared.time)
}

func (nt NTime) After(compared NTime) bool {
	return nt.time.After(compared.time)
}

// IsZero reports whether the time is null.
func (nt NTime) IsZero() bool {
	return !nt.isValid
}

// Time returns the underlying time, zero valued when null; templates use it for display.
func (nt NTime) Time() time.Time {
	return nt.time
}
