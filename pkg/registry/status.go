package registry

import (
	"fmt"
	"strings"
	"time"
)

// Status is the current verdict of a test record.
type Status int

const (
	StatusPending Status = iota
	StatusPass
	StatusFail
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusPass, StatusFail}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusFail
}

// ParseStatus accepts the lowercase names returned by String.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "pass":
		return StatusPass, nil
	case "fail":
		return StatusFail, nil
	}
	return StatusPending, fmt.Errorf("unknown status %q (expected pending, pass, fail)", s)
}

// Filter selects which records a view shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterPass
	FilterFail
)

// Filters lists every filter in the order the filter control shows them.
var Filters = []Filter{FilterAll, FilterPending, FilterPass, FilterFail}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterPending:
		return "pending"
	case FilterPass:
		return "pass"
	case FilterFail:
		return "fail"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// ParseFilter accepts the lowercase names returned by String.
// An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "pending":
		return FilterPending, nil
	case "pass":
		return FilterPass, nil
	case "fail":
		return FilterFail, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (expected all, pending, pass, fail)", s)
}

// Matches reports whether a record with status s belongs in the view.
func (f Filter) Matches(s Status) bool {
	switch f {
	case FilterAll:
		return true
	case FilterPending:
		return s == StatusPending
	case FilterPass:
		return s == StatusPass
	case FilterFail:
		return s == StatusFail
	default:
		return false
	}
}

// Next returns the following filter, wrapping from Fail back to All.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// TimeLayout is the fixed human-readable form used for LastRunAt.
const TimeLayout = "2006-01-02 15:04"

// FormatRunAt renders t at minute precision in its own location, or
// "never" when t is the zero time.
func FormatRunAt(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(TimeLayout)
}
