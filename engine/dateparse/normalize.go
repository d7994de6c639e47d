package dateparse

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/greetly/greetly/engine/core"
)

// ErrUnparseable signals that a cell value cannot be normalized into a
// calendar date. It is the only error Normalize returns.
var ErrUnparseable = errors.New("unparseable date")

// serialEpoch is day zero of the spreadsheet serial-number convention.
// 1899-12-30 rather than 1899-12-31 absorbs the historical Lotus 1-2-3
// leap-year bug that both legacy container formats inherited.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// genericLayouts is the loose first-pass layout set, tried before the
// explicit numeric patterns.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

var (
	slashRe       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoRe         = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	hyphenYLRe    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	numericLikeRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Normalize converts a raw cell into a canonical date. Native date values
// pass through; numbers are day offsets from serialEpoch with any
// fractional part truncated; text is trimmed and matched against the
// generic layouts, then the explicit slash/ISO/hyphen patterns. Anything
// else is ErrUnparseable.
func Normalize(cell Cell) (core.Date, error) {
	switch cell.kind {
	case kindTime:
		if cell.t.IsZero() {
			return core.Date{}, ErrUnparseable
		}
		return core.DateOf(cell.t), nil
	case kindNumber:
		return fromSerial(cell.n)
	case kindText:
		return fromText(cell.s)
	default:
		return core.Date{}, ErrUnparseable
	}
}

func fromSerial(n float64) (core.Date, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return core.Date{}, ErrUnparseable
	}
	// Sub-day precision is irrelevant for birth dates.
	days := int(math.Trunc(n))
	return core.DateOf(serialEpoch.AddDate(0, 0, days)), nil
}

func fromText(raw string) (core.Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return core.Date{}, ErrUnparseable
	}
	// Numeric-looking text is a serial that arrived as a string, which is
	// how raw cell reads surface date-formatted cells.
	if numericLikeRe.MatchString(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return core.Date{}, ErrUnparseable
		}
		return fromSerial(n)
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t), nil
		}
	}
	if m := slashRe.FindStringSubmatch(s); m != nil {
		return fromYearLast(m[1], m[2], m[3])
	}
	if m := isoRe.FindStringSubmatch(s); m != nil {
		return checked(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}
	if m := hyphenYLRe.FindStringSubmatch(s); m != nil {
		return fromYearLast(m[1], m[2], m[3])
	}
	return core.Date{}, ErrUnparseable
}

// fromYearLast resolves the two leading numbers of a year-last pattern.
// If the first exceeds 12 it must be the day; if the second exceeds 12 it
// must be the day; otherwise month-first (US convention) wins. Genuinely
// ambiguous inputs like 01/02/2000 are guessed, not rejected.
func fromYearLast(first, second, year string) (core.Date, error) {
	a, b, y := atoi(first), atoi(second), atoi(year)
	switch {
	case a > 12:
		return checked(y, time.Month(b), a)
	case b > 12:
		return checked(y, time.Month(a), b)
	default:
		return checked(y, time.Month(a), b)
	}
}

func checked(year int, month time.Month, day int) (core.Date, error) {
	d := core.NewDate(year, month, day)
	if !d.Valid() {
		return core.Date{}, ErrUnparseable
	}
	return d, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
