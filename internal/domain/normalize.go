package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The backend's payload shapes drifted over time: deliverable notes are
// sometimes a raw string and sometimes {"description": "..."}, revision
// counters arrive as numbers or numeric strings, and dates as bare
// YYYY-MM-DD or full RFC 3339 timestamps. These types absorb that drift
// once, at the decode boundary, so nothing downstream has to branch on
// shape.

// TextPayload holds a free-text deliverables note.
type TextPayload struct {
	Description string
}

func (p TextPayload) IsZero() bool { return p.Description == "" }

func (p TextPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Description string `json:"description"`
	}{p.Description})
}

func (p *TextPayload) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Description = s
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("deliverables payload is neither string nor object: %w", err)
	}
	p.Description = obj.Description
	return nil
}

// FlexInt decodes from a JSON number or a numeric string.
type FlexInt int

func (n FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(n))
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parsing %q as integer: %w", s, err)
	}
	*n = FlexInt(v)
	return nil
}

// Date is a calendar date. It decodes from "2006-01-02" or a full
// RFC 3339 timestamp and always encodes as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

// Before reports whether d falls strictly before other, comparing
// calendar days only.
func (d Date) Before(other Date) bool {
	return d.Time.Truncate(24 * time.Hour).Before(other.Time.Truncate(24 * time.Hour))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}
