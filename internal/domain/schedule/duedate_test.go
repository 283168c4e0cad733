package schedule

import (
	"testing"
	"time"

	"rentlite/internal/domain/property"

	"github.com/stretchr/testify/assert"
)

// 2026-01-04 is a Sunday opening a rent week for the fortnightly rule;
// the week of 2026-01-11 is the off week.
func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestNextDueDate_Weekly(t *testing.T) {
	calc := NewCalculator(0)

	testCases := []struct {
		name     string
		dueDay   int // 1=Sunday..7=Saturday
		now      time.Time
		expected time.Time
	}{
		{
			name:     "upcoming monday from wednesday",
			dueDay:   2,
			now:      date(2026, time.January, 7, 10),
			expected: date(2026, time.January, 12, 0),
		},
		{
			name:     "same day before cutoff stays today",
			dueDay:   2,
			now:      date(2026, time.January, 5, 10),
			expected: date(2026, time.January, 5, 0),
		},
		{
			name:     "same day at cutoff hour stays today",
			dueDay:   2,
			now:      date(2026, time.January, 5, 12),
			expected: date(2026, time.January, 5, 0),
		},
		{
			name:     "same day after cutoff rolls a week",
			dueDay:   2,
			now:      date(2026, time.January, 5, 14),
			expected: date(2026, time.January, 12, 0),
		},
		{
			name:     "saturday due from sunday",
			dueDay:   7,
			now:      date(2026, time.January, 4, 9),
			expected: date(2026, time.January, 10, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, calc.NextDueDate(tc.dueDay, property.FrequencyWeekly, tc.now))
		})
	}
}

func TestNextDueDate_WeeklyCustomCutoff(t *testing.T) {
	calc := NewCalculator(17)

	// 14:00 is past the default cutoff but not past 17:00.
	got := calc.NextDueDate(2, property.FrequencyWeekly, date(2026, time.January, 5, 14))
	assert.Equal(t, date(2026, time.January, 5, 0), got)
}

func TestNextDueDate_Fortnightly(t *testing.T) {
	calc := NewCalculator(0)

	testCases := []struct {
		name     string
		dueDay   int
		now      time.Time
		expected time.Time
	}{
		{
			name:     "rent week resolves to this week's occurrence",
			dueDay:   6, // Friday
			now:      date(2026, time.January, 4, 9),
			expected: date(2026, time.January, 9, 0),
		},
		{
			name:     "off week pushes into the next rent week",
			dueDay:   6,
			now:      date(2026, time.January, 13, 9),
			expected: date(2026, time.January, 23, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, calc.NextDueDate(tc.dueDay, property.FrequencyFortnightly, tc.now))
		})
	}
}

func TestFortnightly_SuccessiveWeeksAlternate(t *testing.T) {
	// The same property evaluated on two successive Mondays must land
	// on due dates 14 days apart, not 7: one Monday sits in a rent
	// week, the next in the off week.
	calc := NewCalculator(0)
	rentWeekMonday := date(2026, time.January, 5, 9)
	offWeekMonday := date(2026, time.January, 12, 9)

	first := calc.NextDueDate(6, property.FrequencyFortnightly, rentWeekMonday)
	second := calc.NextDueDate(6, property.FrequencyFortnightly, offWeekMonday)

	assert.Equal(t, date(2026, time.January, 9, 0), first)
	assert.Equal(t, date(2026, time.January, 23, 0), second)
	assert.Equal(t, 14*24*time.Hour, second.Sub(first))
}

func TestFortnightly_OccurrencesAreFourteenDaysApart(t *testing.T) {
	calc := NewCalculator(0)
	now := date(2026, time.January, 20, 9) // Tuesday in a rent week

	elapsed := calc.ElapsedDueDate(6, property.FrequencyFortnightly, now)
	next := calc.NextDueDate(6, property.FrequencyFortnightly, now)

	assert.Equal(t, date(2026, time.January, 9, 0), elapsed)
	assert.Equal(t, date(2026, time.January, 23, 0), next)
	assert.Equal(t, 14*24*time.Hour, next.Sub(elapsed))
}

func TestNextDueDate_Monthly(t *testing.T) {
	calc := NewCalculator(0)

	testCases := []struct {
		name     string
		dueDay   int
		now      time.Time
		expected time.Time
	}{
		{
			name:     "before the due day stays in the current month",
			dueDay:   15,
			now:      date(2026, time.March, 10, 9),
			expected: date(2026, time.March, 15, 0),
		},
		{
			name:     "after the due day moves to next month",
			dueDay:   15,
			now:      date(2026, time.March, 20, 9),
			expected: date(2026, time.April, 15, 0),
		},
		{
			name:     "day 31 clamps to end of february",
			dueDay:   31,
			now:      date(2026, time.February, 10, 9),
			expected: date(2026, time.February, 28, 0),
		},
		{
			name:     "day 31 clamps in the following month too",
			dueDay:   31,
			now:      date(2026, time.January, 31, 12),
			expected: date(2026, time.February, 28, 0),
		},
		{
			name:     "day 30 clamps to leap day",
			dueDay:   30,
			now:      date(2028, time.February, 10, 9),
			expected: date(2028, time.February, 29, 0),
		},
		{
			name:     "december rolls into january",
			dueDay:   15,
			now:      date(2026, time.December, 20, 9),
			expected: date(2027, time.January, 15, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, calc.NextDueDate(tc.dueDay, property.FrequencyMonthly, tc.now))
		})
	}
}

func TestElapsedDueDate(t *testing.T) {
	calc := NewCalculator(0)

	testCases := []struct {
		name     string
		dueDay   int
		freq     property.Frequency
		now      time.Time
		expected time.Time
	}{
		{
			name:     "weekly day after due",
			dueDay:   2,
			freq:     property.FrequencyWeekly,
			now:      date(2026, time.January, 6, 9),
			expected: date(2026, time.January, 5, 0),
		},
		{
			name:     "weekly on the due day looks back a full week",
			dueDay:   2,
			freq:     property.FrequencyWeekly,
			now:      date(2026, time.January, 5, 9),
			expected: date(2025, time.December, 29, 0),
		},
		{
			name:     "fortnightly skips the off week occurrence",
			dueDay:   6,
			freq:     property.FrequencyFortnightly,
			now:      date(2026, time.January, 20, 9),
			expected: date(2026, time.January, 9, 0),
		},
		{
			name:     "monthly day after due",
			dueDay:   15,
			freq:     property.FrequencyMonthly,
			now:      date(2026, time.March, 16, 9),
			expected: date(2026, time.March, 15, 0),
		},
		{
			name:     "monthly on the due day looks back a month",
			dueDay:   15,
			freq:     property.FrequencyMonthly,
			now:      date(2026, time.March, 15, 8),
			expected: date(2026, time.February, 15, 0),
		},
		{
			name:     "monthly clamp looks back to short month end",
			dueDay:   31,
			freq:     property.FrequencyMonthly,
			now:      date(2026, time.March, 5, 9),
			expected: date(2026, time.February, 28, 0),
		},
		{
			name:     "january looks back into december",
			dueDay:   15,
			freq:     property.FrequencyMonthly,
			now:      date(2026, time.January, 10, 9),
			expected: date(2025, time.December, 15, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, calc.ElapsedDueDate(tc.dueDay, tc.freq, tc.now))
		})
	}
}

func TestElapsedDueDate_DayAfterEquality(t *testing.T) {
	// The batch driver checks properties whose rent fell due exactly
	// yesterday. The elapsed due date the morning after must therefore
	// equal yesterday's midnight.
	calc := NewCalculator(0)
	now := date(2026, time.January, 10, 8) // Saturday
	yesterday := Midnight(now).AddDate(0, 0, -1)

	elapsed := calc.ElapsedDueDate(6, property.FrequencyWeekly, now) // due Fridays
	assert.True(t, elapsed.Equal(yesterday))
}
