package timescale

import (
	"math"

	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/status"
)

// Converter performs the conversions that depend on TAI-UTC. Every call
// takes a single snapshot of its leap second table, so a concurrent
// table update never splits one conversion across two tables.
type Converter struct {
	leaps *leap.Table
	log   *zap.Logger
}

type Option func(*Converter)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		c.log = logger
	}
}

// New returns a Converter reading table. A nil table means leap.Default.
func New(table *leap.Table, opts ...Option) *Converter {
	if table == nil {
		table = leap.Default
	}
	c := &Converter{
		leaps: table,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// utcDay describes the length of one UTC day in SI seconds
type utcDay struct {
	dat0  float64 // TAI-UTC at 0h
	dlod  float64 // drift over the day, pre-1972 only
	dleap float64 // leap second at the end of the day, if any
}

func (d utcDay) length() float64 {
	return julian.SecondsPerDay + d.dlod + d.dleap
}

// examineDay samples TAI-UTC at the start, middle and end of a UTC day
func examineDay(entries []leap.Entry, year, month, day int) (utcDay, status.Warning, error) {
	var warn status.Warning

	dat0, w, err := leap.Resolve(entries, year, month, day, 0.0)
	if err != nil {
		return utcDay{}, 0, err
	}
	warn |= w

	dat12, w, err := leap.Resolve(entries, year, month, day, 0.5)
	if err != nil {
		return utcDay{}, 0, err
	}
	warn |= w

	start, err := julian.CalendarToJD(year, month, day)
	if err != nil {
		return utcDay{}, 0, err
	}
	ny, nm, nd, _, err := julian.JDToCalendar(julian.Date{Part1: start.Part1, Part2: start.Part2 + 1.0})
	if err != nil {
		return utcDay{}, 0, err
	}
	dat24, w, err := leap.Resolve(entries, ny, nm, nd, 0.0)
	if err != nil {
		return utcDay{}, 0, err
	}
	warn |= w

	dlod := 2.0 * (dat12 - dat0)
	return utcDay{
		dat0:  dat0,
		dlod:  dlod,
		dleap: dat24 - (dat0 + dlod),
	}, warn, nil
}

// UTCToTAI converts a quasi Julian date in UTC to TAI. On a day ending in
// a leap second the UTC fraction is stretched over the longer day.
func (c *Converter) UTCToTAI(utc julian.Date) (julian.Date, status.Warning, error) {
	return utcToTAI(c.leaps.Get(), utc)
}

func utcToTAI(entries []leap.Entry, utc julian.Date) (julian.Date, status.Warning, error) {
	u1, u2, bigFirst := utc.Split()

	year, month, day, fd, err := julian.JDToCalendar(julian.Date{Part1: u1, Part2: u2})
	if err != nil {
		return julian.Date{}, 0, err
	}

	d, warn, err := examineDay(entries, year, month, day)
	if err != nil {
		return julian.Date{}, 0, err
	}

	// scale the fraction for the leap second then for the drift
	fd *= (julian.SecondsPerDay + d.dleap) / julian.SecondsPerDay
	fd *= (julian.SecondsPerDay + d.dlod) / julian.SecondsPerDay

	z, err := julian.CalendarToJD(year, month, day)
	if err != nil {
		return julian.Date{}, 0, err
	}

	a2 := z.Part1 - u1
	a2 += z.Part2
	a2 += fd + d.dat0/julian.SecondsPerDay

	return julian.Join(u1, a2, bigFirst), warn, nil
}

// TAIToUTC inverts UTCToTAI by fixed point iteration
func (c *Converter) TAIToUTC(tai julian.Date) (julian.Date, status.Warning, error) {
	return taiToUTC(c.leaps.Get(), tai)
}

func taiToUTC(entries []leap.Entry, tai julian.Date) (julian.Date, status.Warning, error) {
	a1, a2, bigFirst := tai.Split()

	u1, u2 := a1, a2
	var warn status.Warning
	for i := 0; i < 3; i++ {
		g, w, err := utcToTAI(entries, julian.Date{Part1: u1, Part2: u2})
		if err != nil {
			return julian.Date{}, 0, err
		}
		warn = w

		u2 += a1 - g.Part1
		u2 += a2 - g.Part2
	}

	return julian.Join(u1, u2, bigFirst), warn, nil
}

type scanState int

const (
	scanning scanState = iota
	eventFound
	done
)

// leapEvent is a step in TAI-UTC found while scanning nearby days
type leapEvent struct {
	year, month, day int
	step             float64
}

// scanLeaps looks at 0h on each day from first to last relative to the
// date big+small and reports the first step in TAI-UTC of half a second
// or more.
func scanLeaps(entries []leap.Entry, big, small float64, first, last int) (leapEvent, bool, status.Warning, error) {
	var (
		state scanState
		event leapEvent
		warn  status.Warning
		prev  float64
	)

	for i := first; state == scanning; i++ {
		if i > last {
			state = done
			break
		}

		year, month, day, _, err := julian.JDToCalendar(julian.Date{Part1: big, Part2: small + float64(i)})
		if err != nil {
			return leapEvent{}, false, 0, err
		}
		dat, w, err := leap.Resolve(entries, year, month, day, 0.0)
		if err != nil {
			return leapEvent{}, false, 0, err
		}
		warn = w

		if i == first {
			prev = dat
		}
		if step := dat - prev; math.Abs(step) >= 0.5 {
			event = leapEvent{year: year, month: month, day: day, step: step}
			state = eventFound
		}
		prev = dat
	}

	return event, state == eventFound, warn, nil
}

// UT1ToUTC converts UT1 to UTC given dut1 = UT1-UTC in seconds. Within a
// day ahead of a leap second dut1 is ramped across the step and the
// result carries LeapRamp.
func (c *Converter) UT1ToUTC(ut1 julian.Date, dut1 float64) (julian.Date, status.Warning, error) {
	return ut1ToUTC(c.leaps.Get(), ut1, dut1)
}

func ut1ToUTC(entries []leap.Entry, ut1 julian.Date, dut1 float64) (julian.Date, status.Warning, error) {
	u1, u2, bigFirst := ut1.Split()

	duts := dut1
	event, found, warn, err := scanLeaps(entries, u1, u2, -1, 3)
	if err != nil {
		return julian.Date{}, 0, err
	}

	if found {
		// UT1-UTC jumps with the leap second: pre-adjust so that the
		// value is continuous with the day that follows
		if event.step*duts >= 0 {
			duts -= event.step
		}

		start, err := julian.CalendarToJD(event.year, event.month, event.day)
		if err != nil {
			return julian.Date{}, 0, err
		}
		us1 := start.Part1
		us2 := start.Part2 - 1.0 + duts/julian.SecondsPerDay

		du := u1 - us1
		du += u2 - us2
		if du > 0 {
			fd := du * julian.SecondsPerDay / (julian.SecondsPerDay + event.step)
			duts += event.step * math.Min(fd, 1.0)
			warn |= status.LeapRamp
		}
	}

	return julian.Join(u1, u2-duts/julian.SecondsPerDay, bigFirst), warn, nil
}

// UTCToUT1 converts UTC to UT1 given dut1 = UT1-UTC in seconds. dut1 is
// taken to apply at 0h on the UTC day.
func (c *Converter) UTCToUT1(utc julian.Date, dut1 float64) (julian.Date, status.Warning, error) {
	return utcToUT1(c.leaps.Get(), utc, dut1)
}

func utcToUT1(entries []leap.Entry, utc julian.Date, dut1 float64) (julian.Date, status.Warning, error) {
	year, month, day, _, err := julian.JDToCalendar(utc)
	if err != nil {
		return julian.Date{}, 0, err
	}
	dat, warn, err := leap.Resolve(entries, year, month, day, 0.0)
	if err != nil {
		return julian.Date{}, 0, err
	}

	dta := dut1 - dat

	tai, w, err := utcToTAI(entries, utc)
	if err != nil {
		return julian.Date{}, 0, err
	}
	warn |= w

	return TAIToUT1(tai, dta), warn, nil
}
