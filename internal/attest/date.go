package attest

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateOnlyLayout matches YYYY-MM-DD strings. These are interpreted as local
// calendar dates, not UTC midnight: parsing "2000-05-15" as UTC would shift
// it a day backwards in negative-offset zones and miscompute ages on the
// birthday boundary.
const dateOnlyLayout = "2006-01-02"

// DateValue is the tagged date variant accepted at the boundary: a native
// time, an RFC3339 string, a date-only string, or a unix-seconds number. It
// normalizes into one strict value via Resolve; engines treat a failed
// Resolve as terminal invalid input.
type DateValue struct {
	t   time.Time
	raw string
	set bool
}

// DateFromTime builds a DateValue from a native time.
func DateFromTime(t time.Time) DateValue {
	return DateValue{t: t, set: true}
}

// DateFromString builds a DateValue from a raw string; parsing is deferred to
// Resolve. An empty string yields the zero DateValue.
func DateFromString(s string) DateValue {
	if s == "" {
		return DateValue{}
	}
	return DateValue{raw: s, set: true}
}

// IsZero reports whether no date was supplied.
func (d DateValue) IsZero() bool {
	return !d.set
}

// Resolve normalizes the variant into a time.Time.
func (d DateValue) Resolve() (time.Time, error) {
	if !d.set {
		return time.Time{}, fmt.Errorf("date is missing")
	}
	if !d.t.IsZero() {
		return d.t, nil
	}
	if t, err := time.Parse(time.RFC3339, d.raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, d.raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", d.raw)
}

// UnmarshalJSON accepts null, a string (RFC3339 or YYYY-MM-DD), or a number
// (unix seconds).
func (d *DateValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DateValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DateFromString(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DateFromTime(time.Unix(n, 0).UTC())
		return nil
	}

	return fmt.Errorf("date must be a string or unix timestamp")
}

// MarshalJSON renders the original variant.
func (d DateValue) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	if d.raw != "" {
		return json.Marshal(d.raw)
	}
	return json.Marshal(d.t.Format(time.RFC3339))
}
