// Package almanac schedules reports of the current instant across time
// scales, at fixed times, at sunset or around leap seconds.
package almanac

import (
	"fmt"
	"time"

	"go.brendoncarroll.net/tai64"
	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/solar"
	"github.com/subtlepseudonym/almanac/status"
	"github.com/subtlepseudonym/almanac/timescale"
)

// Job reports the instant it runs at in each of its scales.
//
// This implements robfig/cron.Job
type Job struct {
	Label     string
	Scales    []timescale.Scale
	Precision int
	DUT1      float64 // UT1-UTC, seconds

	Converter *timescale.Converter
	Logger    *zap.Logger
	Clock     func() time.Time
}

// Reading is an instant expressed in one scale
type Reading struct {
	Scale    timescale.Scale    `json:"scale"`
	Date     julian.Date        `json:"-"`
	JD       [2]float64         `json:"jd"`
	Calendar timescale.Calendar `json:"-"`
	Time     string             `json:"time"`
}

type Report struct {
	Label    string         `json:"label,omitempty"`
	Instant  time.Time      `json:"instant"`
	TAI64N   string         `json:"tai64n"`
	Readings []Reading      `json:"readings"`
	Sun      solar.Position `json:"sun"`
	Warning  status.Warning `json:"-"`
	Status   string         `json:"status"`
}

func (j Job) logger() *zap.Logger {
	if j.Logger == nil {
		return zap.NewNop()
	}
	return j.Logger
}

func (j Job) Run() {
	now := time.Now
	if j.Clock != nil {
		now = j.Clock
	}

	report, err := j.Report(now())
	if err != nil {
		j.logger().Error("report", zap.String("label", j.Label), zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("label", j.Label),
		zap.Time("instant", report.Instant),
		zap.String("tai64n", report.TAI64N),
	}
	for _, r := range report.Readings {
		fields = append(fields, zap.String(r.Scale.String(), r.Time))
	}
	fields = append(fields,
		zap.Float64("solar_longitude", report.Sun.Longitude),
		zap.Float64("solar_declination", report.Sun.Declination),
	)
	if report.Warning != 0 {
		fields = append(fields, zap.Stringer("warning", report.Warning))
	}

	j.logger().Info("almanac", fields...)
}

// Report expresses now in each of the job's scales, or every scale if
// none are set. TDB-TT is approximated from the sun's position.
func (j Job) Report(now time.Time) (Report, error) {
	conv := j.Converter
	if conv == nil {
		conv = timescale.New(nil)
	}
	scales := j.Scales
	if len(scales) == 0 {
		scales = timescale.Scales
	}

	utc, warn, err := conv.FromTime(now)
	if err != nil {
		return Report{}, fmt.Errorf("from time: %w", err)
	}
	tt, w, err := conv.Convert(timescale.UTC, timescale.TT, utc)
	if err != nil {
		return Report{}, err
	}
	warn |= w

	opts := []timescale.ConvertOption{
		timescale.WithDTR(solar.TDBMinusTT(tt)),
		timescale.WithDUT1(j.DUT1),
	}

	readings := make([]Reading, 0, len(scales))
	for _, scale := range scales {
		d, w, err := conv.Convert(timescale.UTC, scale, utc, opts...)
		if err != nil {
			return Report{}, err
		}
		warn |= w

		cal, w, err := conv.ToCalendar(scale, j.Precision, d)
		if err != nil {
			return Report{}, fmt.Errorf("%s calendar: %w", scale, err)
		}
		warn |= w

		readings = append(readings, Reading{
			Scale:    scale,
			Date:     d,
			JD:       [2]float64{d.Part1, d.Part2},
			Calendar: cal,
			Time:     cal.String(),
		})
	}

	return Report{
		Label:    j.Label,
		Instant:  now.UTC(),
		TAI64N:   Label(now),
		Readings: readings,
		Sun:      solar.PositionAt(tt),
		Warning:  warn,
		Status:   warn.String(),
	}, nil
}

// Label formats t as an external TAI64N label
// https://cr.yp.to/libtai/tai64.html
func Label(t time.Time) string {
	return fmt.Sprintf("@%x", tai64.FromGoTime(t).Marshal())
}
