// internal/domain/schedule/duedate.go
package schedule

import (
	"time"

	"rentlite/internal/domain/property"
)

// DefaultCutoffHour is the hour after which a same-day weekly or
// fortnightly occurrence counts as already passed.
const DefaultCutoffHour = 12

// fortnightEpoch anchors fortnightly scheduling: Sunday 1970-01-04.
// Weeks at an even whole-week offset from this Sunday are rent weeks.
var fortnightEpoch = time.Date(1970, time.January, 4, 0, 0, 0, 0, time.UTC)

// Calculator computes rent due dates from a property's recurrence rule.
// It is pure: "now" is always passed in, results are date-only values
// at midnight in now's location.
type Calculator struct {
	CutoffHour int
}

func NewCalculator(cutoffHour int) *Calculator {
	if cutoffHour <= 0 {
		cutoffHour = DefaultCutoffHour
	}
	return &Calculator{CutoffHour: cutoffHour}
}

// Midnight strips the time-of-day component so date comparisons are
// deterministic.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDueDate returns the next occurrence of the rent due date on or
// after now. dueDay is 1-31 for MONTHLY and 1-7 (1=Sunday..7=Saturday)
// for WEEKLY/FORTNIGHTLY.
func (c *Calculator) NextDueDate(dueDay int, freq property.Frequency, now time.Time) time.Time {
	switch freq {
	case property.FrequencyWeekly:
		return Midnight(now).AddDate(0, 0, c.daysUntilWeekly(dueDay, now))

	case property.FrequencyFortnightly:
		daysUntil := c.daysUntilWeekly(dueDay, now)
		if !isRentWeek(now) {
			// Off-cycle week: push into the next (rent) week. The
			// cutoff roll in daysUntilWeekly already adds 7 on a
			// same-day afternoon, which lands in the rent week.
			if daysUntil < 7 {
				daysUntil += 7
			}
		}
		return Midnight(now).AddDate(0, 0, daysUntil)

	case property.FrequencyMonthly:
		due := monthDay(now.Year(), now.Month(), dueDay, now.Location())
		if !due.After(now) {
			due = monthDay(now.Year(), now.Month()+1, dueDay, now.Location())
		}
		return due
	}
	// Unknown frequency: treat as monthly, the most common rule.
	return c.NextDueDate(dueDay, property.FrequencyMonthly, now)
}

// ElapsedDueDate returns the most recent occurrence strictly before
// today. This is the cycle a day-after-due check evaluates; the noon
// cutoff does not apply to dates that have already fully elapsed.
func (c *Calculator) ElapsedDueDate(dueDay int, freq property.Frequency, now time.Time) time.Time {
	today := Midnight(now)
	switch freq {
	case property.FrequencyWeekly:
		return today.AddDate(0, 0, -daysSinceWeekly(dueDay, now))

	case property.FrequencyFortnightly:
		due := today.AddDate(0, 0, -daysSinceWeekly(dueDay, now))
		if !isRentWeek(due) {
			due = due.AddDate(0, 0, -7)
		}
		return due

	case property.FrequencyMonthly:
		due := monthDay(now.Year(), now.Month(), dueDay, now.Location())
		if !due.Before(today) {
			due = monthDay(now.Year(), now.Month()-1, dueDay, now.Location())
		}
		return due
	}
	return c.ElapsedDueDate(dueDay, property.FrequencyMonthly, now)
}

// daysUntilWeekly computes the 0-6 day distance to the next weekly
// occurrence, rolling a same-day occurrence forward a full week once
// the cutoff hour has passed.
func (c *Calculator) daysUntilWeekly(dueDay int, now time.Time) int {
	current := int(now.Weekday()) + 1 // 1=Sunday..7=Saturday
	daysUntil := (dueDay - current + 7) % 7
	if daysUntil == 0 && now.Hour() > c.CutoffHour {
		daysUntil = 7
	}
	return daysUntil
}

// daysSinceWeekly is the 1-7 day distance back to the previous weekly
// occurrence. A same-day occurrence has not elapsed yet, so the
// distance is never zero.
func daysSinceWeekly(dueDay int, now time.Time) int {
	current := int(now.Weekday()) + 1
	daysSince := (current - dueDay + 7) % 7
	if daysSince == 0 {
		daysSince = 7
	}
	return daysSince
}

// isRentWeek reports whether t falls in a rent week: an even number of
// whole weeks since the epoch Sunday.
func isRentWeek(t time.Time) bool {
	sunday := Midnight(t).AddDate(0, 0, -int(t.Weekday()))
	weeks := daysBetween(fortnightEpoch, sunday) / 7
	return weeks%2 == 0
}

// daysBetween counts calendar days from a to b, ignoring time zones so
// DST transitions cannot skew the week arithmetic.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// monthDay builds the day-th of the given month at midnight, clamping
// day to the month's length (day 31 in February means the last day of
// February). Month may be out of range; time.Date normalizes it.
func monthDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
