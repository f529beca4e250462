package almanac

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/leap"
)

const (
	sunsetPrefix = "@sunset"
	leapPrefix   = "@leap"
)

// ScheduleParser understands standard cron specs plus "@sunset [offset]"
// and "@leap [offset]", where offset is a time.Duration string.
type ScheduleParser struct {
	Location Location
	Table    *leap.Table
	Logger   *zap.Logger
}

func (p ScheduleParser) Parse(spec string) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty schedule")
	}

	switch fields[0] {
	case sunsetPrefix, leapPrefix:
		var offset time.Duration
		if len(fields) > 2 {
			return nil, fmt.Errorf("parse %s schedule: unexpected %q", fields[0], fields[2])
		}
		if len(fields) == 2 {
			var err error
			offset, err = time.ParseDuration(fields[1])
			if err != nil {
				return nil, fmt.Errorf("parse %s offset: %w", fields[0], err)
			}
		}

		if fields[0] == sunsetPrefix {
			return SunsetSchedule{
				Location: p.Location,
				Offset:   offset,
				Logger:   p.Logger,
			}, nil
		}
		return LeapSchedule{
			Table:  p.Table,
			Offset: offset,
		}, nil
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return schedule, nil
}
