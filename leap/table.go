// Package leap holds the table of TAI-UTC changes and resolves the offset
// in force on a given date.
//
// As of go1.14, leap seconds are not supported by the time package, so
// any conversion that must land on 23:59:60 has to consult this table.
// https://github.com/golang/go/issues/15247
package leap

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Entry is a change in TAI-UTC taking effect at 0h UTC on the first day of
// Year/Month.
//
// Before 1972 the offset was not a whole number of seconds but drifted:
// TAI-UTC = DeltaAT + (MJD - DriftEpoch) * DriftRate. Entries with a zero
// DriftRate are plain steps.
type Entry struct {
	Year       int
	Month      int
	DeltaAT    float64 // seconds
	DriftEpoch float64 // MJD
	DriftRate  float64 // seconds per day
}

func (e Entry) String() string {
	if e.DriftRate == 0 {
		return fmt.Sprintf("%04d-%02d %+.7fs", e.Year, e.Month, e.DeltaAT)
	}
	return fmt.Sprintf("%04d-%02d %+.7fs drift %.7fs/day from MJD %.1f", e.Year, e.Month, e.DeltaAT, e.DriftRate, e.DriftEpoch)
}

// Table is a replaceable set of leap second entries, safe for concurrent
// use. The zero value is not usable; call NewTable.
//
// A Table starts out empty and loads the builtin entries the first time
// it is read. Readers always receive a copy.
type Table struct {
	mu      sync.RWMutex
	entries []Entry
	log     *zap.Logger
}

// Option configures a Table
type Option func(*Table)

// WithLogger sets the logger used to report table changes
func WithLogger(logger *zap.Logger) Option {
	return func(t *Table) {
		t.log = logger
	}
}

func NewTable(opts ...Option) *Table {
	t := &Table{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Default is the process-wide table used by the package level functions
var Default = NewTable()

// SetLogger replaces the logger, mostly so that Default can log
func (t *Table) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t.mu.Lock()
	t.log = logger
	t.mu.Unlock()
}

// Get returns a copy of the entries in use, loading the builtin table if
// nothing has been set.
func (t *Table) Get() []Entry {
	t.mu.RLock()
	if t.entries != nil {
		entries := make([]Entry, len(t.entries))
		copy(entries, t.entries)
		t.mu.RUnlock()
		return entries
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entries == nil {
		t.entries = Builtin()
		t.log.Debug("loaded builtin leap second table", zap.Int("entries", len(t.entries)))
	}

	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Set replaces the table. An empty slice reverts to the builtin entries on
// the next Get. Entries are copied, so the caller may reuse the slice.
// A table failing Validate is rejected and the current one kept: a month
// outside 1-12, dates out of ascending order, or a step entry with a lower
// TAI-UTC than the step before it.
//
// Calculations that already hold a copy of the previous table finish with
// it; only later calls see the replacement.
func (t *Table) Set(entries []Entry) error {
	if err := Validate(entries); err != nil {
		return err
	}

	var replacement []Entry
	if len(entries) > 0 {
		replacement = make([]Entry, len(entries))
		copy(replacement, entries)
	}

	t.mu.Lock()
	t.entries = replacement
	log := t.log
	t.mu.Unlock()

	if replacement == nil {
		log.Info("reset leap second table to builtin")
	} else {
		last := replacement[len(replacement)-1]
		log.Info("replaced leap second table",
			zap.Int("entries", len(replacement)),
			zap.Stringer("newest", last),
		)
	}

	return nil
}

// Reset reverts the table to the builtin entries
func (t *Table) Reset() {
	// an empty table always validates
	_ = t.Set(nil)
}

// Validate checks that months are 1-12, entries are in strictly ascending
// date order and that step entries never decrease TAI-UTC. Drifting
// entries are exempt from the last rule: the rubber-second era had
// negative steps.
func Validate(entries []Entry) error {
	var prevStep *Entry
	for i := range entries {
		e := entries[i]
		if e.Month < 1 || e.Month > 12 {
			return fmt.Errorf("entry %d: month %d out of range", i, e.Month)
		}

		if i > 0 {
			prev := entries[i-1]
			if 12*e.Year+e.Month <= 12*prev.Year+prev.Month {
				return fmt.Errorf("entry %d: %04d-%02d does not follow %04d-%02d", i, e.Year, e.Month, prev.Year, prev.Month)
			}
		}

		if e.DriftRate == 0 {
			if prevStep != nil && e.DeltaAT < prevStep.DeltaAT {
				return fmt.Errorf("entry %d: TAI-UTC decreases from %g to %g", i, prevStep.DeltaAT, e.DeltaAT)
			}
			prevStep = &entries[i]
		}
	}

	return nil
}

// Get returns a copy of the Default table
func Get() []Entry {
	return Default.Get()
}

// Set replaces the Default table
func Set(entries []Entry) error {
	return Default.Set(entries)
}
