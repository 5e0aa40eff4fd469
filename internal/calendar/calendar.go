// AngelaMos | 2026
// calendar.go

package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Clock is a wall-clock time of day in minutes after midnight. It carries no
// date or zone and is stored as "HH:MM" text, which sorts in time order.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, core.ErrInvalidInput)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Minutes() int {
	return int(c)
}

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Clock) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan clock: unsupported type %T", src)
	}

	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode clock: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Date is a calendar day with no time component, stored as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, core.ErrInvalidInput)
	}
	return Date{Time: t}, nil
}

func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.parseInto(v)
	case []byte:
		return d.parseInto(string(v))
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

func (d *Date) parseInto(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	return d.parseInto(s)
}

// Interval is a half-open [Start, End) span within one day.
type Interval struct {
	Start Clock
	End   Clock
}

func NewInterval(start, end Clock) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf(
			"start time %s must be before end time %s: %w",
			start,
			end,
			core.ErrInvalidInput,
		)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any minute.
// Intervals that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}
