package almanac

import (
	"time"

	"github.com/subtlepseudonym/almanac/leap"
)

// LeapSchedule fires at each leap second in a table, shifted by Offset
type LeapSchedule struct {
	Table  *leap.Table   `json:"-"`
	Offset time.Duration `json:"offset"`
}

// Next returns the first leap second instant plus Offset after now, or
// the zero time once the table holds no later leap second.
//
// This implements robfig/cron.Schedule
func (s LeapSchedule) Next(now time.Time) time.Time {
	table := s.Table
	if table == nil {
		table = leap.Default
	}

	for _, e := range leap.Insertions(table.Get()) {
		at := LeapInstant(e).Add(s.Offset)
		if at.After(now) {
			return at
		}
	}
	return time.Time{}
}

// LeapInstant returns the start of the last whole second before the leap
// second introduced by e. time.Time cannot name 23:59:60 itself.
func LeapInstant(e leap.Entry) time.Time {
	return time.Date(e.Year, time.Month(e.Month), 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)
}
