package core

import (
	"fmt"
	"time"
)

// Date is a canonical calendar date. The year is retained for display and
// diagnostics but is never consulted when matching birthdays.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates an instant to its calendar components in the instant's
// own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether the triple names a real calendar date. time.Date
// normalizes overflow (Feb 30 becomes Mar 1/2), so a round-trip comparison
// catches non-existent month/day combinations.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// SameMonthDay compares only the (month, day) pair. February 29 is equal
// only to February 29; there is no mapping onto the 28th or March 1.
func (d Date) SameMonthDay(other Date) bool {
	return d.Month == other.Month && d.Day == other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
