// Package rotation maps calendar dates onto the module table.
//
// The mapping is pure arithmetic: whole days elapsed since the start date,
// modulo the table size. Given the same start date and table size it always
// produces the same answer for a date, which is what makes archived pages
// reproducible from their file name alone.
package rotation

import "time"

// Position identifies which module a date resolves to
type Position struct {
	Index       int // zero-based index into the module table
	Number      int // one-based display number
	DaysElapsed int // whole days since the start date, clamped at zero
}

// Resolve computes the module position for a target date. Dates before the
// start date clamp to day zero, so every pre-launch date shows the first
// module. That is intentional, not a bug.
func Resolve(target, start time.Time, count int) Position {
	days := daysBetween(start, target)
	if days < 0 {
		days = 0
	}
	idx := days % count
	return Position{
		Index:       idx,
		Number:      idx + 1,
		DaysElapsed: days,
	}
}

// daysBetween counts whole calendar days from a to b, ignoring time of day
// and timezone so a page generated at 23:59 agrees with one at 00:01
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
