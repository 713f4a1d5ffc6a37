package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Duration is a time.Duration that reads and writes as text: "50m", "18h",
// "3d6h" or "7d". A "d" is always 24 hours.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ParseDuration extends time.ParseDuration with a leading whole-day
// component, as in "3d6h".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var days time.Duration
	if i := strings.IndexByte(s, 'd'); i > 0 {
		n, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		days = time.Duration(n) * 24 * time.Hour
		s = s[i+1:]
		if s == "" {
			return days, nil
		}
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return days + v, nil
}

// Date is a calendar date. It accepts "2025-09-16" and, for TOML date
// literals, any RFC 3339 timestamp whose date part is wanted.
type Date struct {
	civil.Date
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{civil.Date{Year: y, Month: m, Day: d}}
}

func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return d.Date.MarshalText()
}

func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > 10 && s[10] == 'T' {
		s = s[:10]
	}
	v, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", string(b), err)
	}
	*d = Date{v}
	return nil
}

// UTC returns midnight UTC at the start of d.
func (d Date) UTC() time.Time {
	return d.In(time.UTC)
}
