package leap

import (
	"math"
	"sort"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/status"
)

const dubiousHorizon = 5 // years

// DeltaAT returns TAI-UTC in seconds for the given UTC date and fraction
// of day, using the Default table.
func DeltaAT(year, month, day int, fraction float64) (float64, status.Warning, error) {
	return Resolve(Default.Get(), year, month, day, fraction)
}

// DeltaAT returns TAI-UTC in seconds for the given UTC date and fraction
// of day.
func (t *Table) DeltaAT(year, month, day int, fraction float64) (float64, status.Warning, error) {
	return Resolve(t.Get(), year, month, day, fraction)
}

// Resolve returns TAI-UTC in seconds for the given UTC date and fraction
// of day from entries, which must satisfy Validate.
//
// Only the drifting pre-1972 entries use the day and fraction; from 1972
// the result is the offset of the latest entry not after year/month. An
// invalid day of month is accepted for that reason.
//
// Dates before the first entry return 0 with DubiousYear. Dates more than
// a few years after the newest entry or ReleaseYear return the newest
// offset with DubiousYear.
func Resolve(entries []Entry, year, month, day int, fraction float64) (float64, status.Warning, error) {
	const op = "delta at"

	if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
		return 0, 0, status.Errorf(op, status.ErrInvalidCalendarField, "day fraction %g", fraction)
	}
	if year < julian.MinYear {
		return 0, 0, status.Errorf(op, status.ErrInvalidCalendarField, "year %d before %d", year, julian.MinYear)
	}
	if month < 1 || month > 12 {
		return 0, 0, status.Errorf(op, status.ErrInvalidCalendarField, "month %d", month)
	}
	if len(entries) == 0 {
		return 0, 0, status.Errorf(op, status.ErrLookupFailure, "empty table")
	}

	if year < entries[0].Year {
		return 0, status.DubiousYear, nil
	}

	var warn status.Warning
	horizon := ReleaseYear
	if last := entries[len(entries)-1].Year; last > horizon {
		horizon = last
	}
	if year > horizon+dubiousHorizon {
		warn |= status.DubiousYear
	}

	m := 12*year + month
	i := sort.Search(len(entries), func(i int) bool {
		return 12*entries[i].Year+entries[i].Month > m
	}) - 1
	if i < 0 {
		return 0, warn, status.Errorf(op, status.ErrLookupFailure, "%04d-%02d precedes first entry %04d-%02d", year, month, entries[0].Year, entries[0].Month)
	}

	e := entries[i]
	da := e.DeltaAT
	if e.DriftRate != 0 {
		djm := julian.ModifiedDayNumber(year, month, day)
		da += (djm + fraction - e.DriftEpoch) * e.DriftRate
	}

	return da, warn, nil
}

// Insertions returns the step entries that introduced a leap second,
// that is every drift-free entry following another drift-free entry.
func Insertions(entries []Entry) []Entry {
	var leaps []Entry
	for i := 1; i < len(entries); i++ {
		prev, e := entries[i-1], entries[i]
		if prev.DriftRate != 0 || e.DriftRate != 0 {
			continue
		}
		if math.Abs(e.DeltaAT-prev.DeltaAT) >= 0.5 {
			leaps = append(leaps, e)
		}
	}
	return leaps
}
