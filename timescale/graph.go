package timescale

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/status"
)

// ErrNoRoute is returned by Convert when every path between two scales
// needs a parameter that was not supplied.
var ErrNoRoute = errors.New("no conversion route")

type param uint8

const (
	none   param = iota
	dtr          // TDB-TT
	dut1         // UT1-UTC
	dta          // UT1-TAI
	deltaT       // TT-UT1
)

// Params holds the externally supplied offsets a conversion may need, all
// in seconds.
type Params struct {
	values map[param]float64
}

func (p Params) get(k param) (float64, bool) {
	v, ok := p.values[k]
	return v, ok
}

type ConvertOption func(*Params)

func withParam(k param, seconds float64) ConvertOption {
	return func(p *Params) {
		if p.values == nil {
			p.values = make(map[param]float64)
		}
		p.values[k] = seconds
	}
}

// WithDTR supplies TDB-TT, enabling the TT-TDB edge
func WithDTR(seconds float64) ConvertOption { return withParam(dtr, seconds) }

// WithDUT1 supplies UT1-UTC, enabling the UTC-UT1 edge
func WithDUT1(seconds float64) ConvertOption { return withParam(dut1, seconds) }

// WithDTA supplies UT1-TAI, enabling the TAI-UT1 edge
func WithDTA(seconds float64) ConvertOption { return withParam(dta, seconds) }

// WithDeltaT supplies TT-UT1, enabling the TT-UT1 edge
func WithDeltaT(seconds float64) ConvertOption { return withParam(deltaT, seconds) }

type step func(entries []leap.Entry, d julian.Date, p float64) (julian.Date, status.Warning, error)

type edge struct {
	from, to Scale
	needs    param
	apply    step
}

func fixed(f func(julian.Date) julian.Date) step {
	return func(_ []leap.Entry, d julian.Date, _ float64) (julian.Date, status.Warning, error) {
		return f(d), 0, nil
	}
}

func offset(f func(julian.Date, float64) julian.Date) step {
	return func(_ []leap.Entry, d julian.Date, p float64) (julian.Date, status.Warning, error) {
		return f(d, p), 0, nil
	}
}

// edges is searched in order, so among routes of equal length the one
// using earlier edges wins.
var edges = []edge{
	{TAI, TT, none, fixed(TAIToTT)},
	{TT, TAI, none, fixed(TTToTAI)},
	{TT, TCG, none, fixed(TTToTCG)},
	{TCG, TT, none, fixed(TCGToTT)},
	{TT, TDB, dtr, offset(TTToTDB)},
	{TDB, TT, dtr, offset(TDBToTT)},
	{TDB, TCB, none, fixed(TDBToTCB)},
	{TCB, TDB, none, fixed(TCBToTDB)},
	{UTC, TAI, none, func(entries []leap.Entry, d julian.Date, _ float64) (julian.Date, status.Warning, error) {
		return utcToTAI(entries, d)
	}},
	{TAI, UTC, none, func(entries []leap.Entry, d julian.Date, _ float64) (julian.Date, status.Warning, error) {
		return taiToUTC(entries, d)
	}},
	{UTC, UT1, dut1, utcToUT1},
	{UT1, UTC, dut1, ut1ToUTC},
	{TAI, UT1, dta, offset(TAIToUT1)},
	{UT1, TAI, dta, offset(UT1ToTAI)},
	{TT, UT1, deltaT, offset(TTToUT1)},
	{UT1, TT, deltaT, offset(UT1ToTT)},
}

// route finds the shortest chain of edges from one scale to another
// usable with the supplied parameters.
func route(from, to Scale, p Params) ([]edge, error) {
	if from == to {
		return nil, nil
	}

	prev := map[Scale]edge{}
	seen := map[Scale]bool{from: true}
	queue := []Scale{from}

	for len(queue) > 0 && !seen[to] {
		s := queue[0]
		queue = queue[1:]

		for _, e := range edges {
			if e.from != s || seen[e.to] {
				continue
			}
			if _, ok := p.get(e.needs); e.needs != none && !ok {
				continue
			}
			seen[e.to] = true
			prev[e.to] = e
			queue = append(queue, e.to)
		}
	}

	if !seen[to] {
		return nil, fmt.Errorf("%s to %s: %w", from, to, ErrNoRoute)
	}

	var path []edge
	for s := to; s != from; s = prev[s].from {
		path = append([]edge{prev[s]}, path...)
	}
	return path, nil
}

// Route lists the scales a conversion from one scale to another passes
// through, including both ends.
func Route(from, to Scale, opts ...ConvertOption) ([]Scale, error) {
	var p Params
	for _, opt := range opts {
		opt(&p)
	}

	path, err := route(from, to, p)
	if err != nil {
		return nil, err
	}

	scales := []Scale{from}
	for _, e := range path {
		scales = append(scales, e.to)
	}
	return scales, nil
}

// Convert carries d from one scale to another along the shortest route
// the supplied parameters allow. Warnings from every hop are combined.
func (c *Converter) Convert(from, to Scale, d julian.Date, opts ...ConvertOption) (julian.Date, status.Warning, error) {
	var p Params
	for _, opt := range opts {
		opt(&p)
	}

	path, err := route(from, to, p)
	if err != nil {
		return julian.Date{}, 0, fmt.Errorf("convert: %w", err)
	}

	entries := c.leaps.Get()

	var warn status.Warning
	for _, e := range path {
		v, _ := p.get(e.needs)

		var w status.Warning
		d, w, err = e.apply(entries, d, v)
		if err != nil {
			return julian.Date{}, 0, fmt.Errorf("convert %s to %s: %w", e.from, e.to, err)
		}
		warn |= w

		c.log.Debug("converted",
			zap.Stringer("from", e.from),
			zap.Stringer("to", e.to),
			zap.Float64("part1", d.Part1),
			zap.Float64("part2", d.Part2),
		)
	}

	return d, warn, nil
}
