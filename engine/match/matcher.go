// Package match selects the roster records whose birthday falls on a target
// calendar day. Matching is pure month/day equality: the birth year is never
// consulted, and someone born on February 29 is matched only when the target
// itself is February 29.
package match

import "github.com/greetly/greetly/engine/core"

// Match returns the records whose birth (month, day) equals the target's,
// preserving input order. An invalid target or empty input yields an empty
// result, never an error.
func Match(records []core.Record, target core.Date) []core.Record {
	matches := []core.Record{}
	if !target.Valid() {
		return matches
	}
	for _, r := range records {
		if r.BirthDate.SameMonthDay(target) {
			matches = append(matches, r)
		}
	}
	return matches
}
