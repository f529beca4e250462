package almanac

import (
	"time"

	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/solar"
)

const searchLimit = 366 // days

type Location struct {
	Latitude  float64 `json:"latitude" koanf:"latitude"`
	Longitude float64 `json:"longitude" koanf:"longitude"` // degrees east
}

type SunsetSchedule struct {
	Location Location      `json:"location"`
	Offset   time.Duration `json:"offset"`

	Logger *zap.Logger `json:"-"`
}

// Next returns the time of next sunset, given the SunsetSchedule's
// location value. Days without a sunset are skipped; if none falls
// within a year the zero time is returned, which stops the job.
//
// This implements robfig/cron.Schedule
func (s SunsetSchedule) Next(now time.Time) time.Time {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for i := -1; i <= searchLimit; i++ {
		sunset, err := solar.Sunset(s.Location.Latitude, s.Location.Longitude, now.AddDate(0, 0, i))
		if err != nil {
			continue
		}

		runTime := sunset.Add(s.Offset)
		if runTime.After(now) {
			log.Debug("next sunset",
				zap.Duration("offset", s.Offset),
				zap.Time("at", runTime.Local()),
			)
			return runTime
		}
	}

	log.Error("no sunset within search limit",
		zap.Float64("latitude", s.Location.Latitude),
		zap.Float64("longitude", s.Location.Longitude),
		zap.Int("days", searchLimit),
	)
	return time.Time{}
}
