// Package calendar converts the ISO date strings stored on records into
// local-time instants and day boundaries.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const ISODate = "2006-01-02"

// Today formats the clock's current local date as YYYY-MM-DD.
func Today(clock func() time.Time) string {
	return clock().In(time.Local).Format(ISODate)
}

// Layouts a stored date may use. Each carries a full calendar date; values
// with only a time of day or a partial date are rejected.
var localLayouts = []string{
	ISODate,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Parse reads a stored date. Plain dates land on local midnight; full
// timestamps keep their time of day.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParseDay accepts only a plain YYYY-MM-DD date.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation(ISODate, strings.TrimSpace(value), time.Local)
}

func StartOfDay(t time.Time) time.Time {
	return now.With(t.In(time.Local)).BeginningOfDay()
}

// EndOfDay returns 23:59:59.999999999 local on t's day.
func EndOfDay(t time.Time) time.Time {
	return now.With(t.In(time.Local)).EndOfDay()
}

// Range is an inclusive date window; a nil bound is open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// NewRange parses the bounds. An empty string leaves that side unbounded and
// the upper bound is stretched to the end of its day.
func NewRange(from, to string) (Range, error) {
	var r Range
	if strings.TrimSpace(from) != "" {
		t, err := Parse(from)
		if err != nil {
			return Range{}, err
		}
		r.From = &t
	}
	if strings.TrimSpace(to) != "" {
		t, err := Parse(to)
		if err != nil {
			return Range{}, err
		}
		end := EndOfDay(t)
		r.To = &end
	}
	return r, nil
}

func (r Range) Unbounded() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether the stored date falls inside the window. Dates
// that do not parse are outside any bounded window.
func (r Range) Contains(value string) bool {
	if r.Unbounded() {
		return true
	}
	t, err := Parse(value)
	if err != nil {
		return false
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}
