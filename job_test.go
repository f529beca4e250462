package almanac

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.brendoncarroll.net/tai64"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/status"
	"github.com/subtlepseudonym/almanac/timescale"
)

var solstice = time.Date(2021, time.June, 21, 12, 0, 0, 0, time.UTC)

func TestJob_Report(t *testing.T) {
	job := Job{
		Label:     "noon",
		Scales:    []timescale.Scale{timescale.UTC, timescale.TAI, timescale.TT},
		Precision: 3,
		Converter: timescale.New(leap.NewTable()),
	}

	report, err := job.Report(solstice)
	require.NoError(t, err)
	assert.Equal(t, "noon", report.Label)
	assert.Equal(t, status.Warning(0), report.Warning)
	assert.Equal(t, "ok", report.Status)

	require.Len(t, report.Readings, 3)
	assert.Equal(t, "2021-06-21T12:00:00.000", report.Readings[0].Time)
	assert.Equal(t, "2021-06-21T12:00:37.000", report.Readings[1].Time)
	assert.Equal(t, "2021-06-21T12:01:09.184", report.Readings[2].Time)
	assert.Equal(t, timescale.TT, report.Readings[2].Scale)

	assert.InDelta(t, 23.44, report.Sun.Declination, 0.05)
}

func TestJob_ReportAllScales(t *testing.T) {
	job := Job{DUT1: -0.1, Converter: timescale.New(leap.NewTable())}

	report, err := job.Report(solstice)
	require.NoError(t, err)
	require.Len(t, report.Readings, len(timescale.Scales))
	for i, r := range report.Readings {
		assert.Equal(t, timescale.Scales[i], r.Scale)
		assert.Equal(t, [2]float64{r.Date.Part1, r.Date.Part2}, r.JD)
	}
}

func TestJob_ReportDubious(t *testing.T) {
	job := Job{Scales: []timescale.Scale{timescale.TAI}, Converter: timescale.New(leap.NewTable())}

	report, err := job.Report(time.Date(2060, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, report.Warning.Has(status.DubiousYear))
	assert.Equal(t, "dubious year", report.Status)
}

func TestJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	job := Job{
		Label:     "solstice",
		Scales:    []timescale.Scale{timescale.TT},
		Precision: 3,
		Converter: timescale.New(leap.NewTable()),
		Logger:    zap.New(core),
		Clock:     func() time.Time { return solstice },
	}

	job.Run()

	entries := logs.FilterMessage("almanac").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "solstice", fields["label"])
	assert.Equal(t, "2021-06-21T12:01:09.184", fields["TT"])
	assert.Contains(t, fields, "solar_longitude")
	assert.NotContains(t, fields, "warning")
}

func TestLabel(t *testing.T) {
	label := Label(solstice)
	require.True(t, strings.HasPrefix(label, "@4000000"), label)
	require.Len(t, label, 25)

	b, err := hex.DecodeString(label[1:])
	require.NoError(t, err)
	secs, err := tai64.Parse(b[:8])
	require.NoError(t, err)
	assert.WithinDuration(t, solstice, secs.GoTime(), time.Minute)
}
