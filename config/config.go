package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/subtlepseudonym/almanac"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/timescale"
)

const (
	envPrefix     = "ALMANAC_"
	DefaultListen = ":9000"
)

// LeapSecond is one row of a leap second table. DriftEpoch and DriftRate
// are only set for the drifting offsets in use before 1972.
type LeapSecond struct {
	Year       int     `koanf:"year"`
	Month      int     `koanf:"month"`
	DeltaAT    float64 `koanf:"delta_at"`
	DriftEpoch float64 `koanf:"drift_epoch"`
	DriftRate  float64 `koanf:"drift_rate"`
}

// Job defines when to report, under what label, in which time scales
// and to how many decimal places of a second.
type Job struct {
	Label     string   `koanf:"label"`
	Schedule  string   `koanf:"schedule"`
	Scales    []string `koanf:"scales"`
	Precision int      `koanf:"precision"`
}

type Config struct {
	LeapSeconds        []LeapSecond     `koanf:"leap_seconds"`
	ReplaceLeapSeconds bool             `koanf:"replace_leap_seconds"`
	Location           almanac.Location `koanf:"location"`
	DUT1               float64          `koanf:"dut1"`
	Verbose            bool             `koanf:"verbose"`
	Listen             string           `koanf:"listen"`
	Jobs               []Job            `koanf:"jobs"`
}

// Open reads filename alone. JSON is a subset of YAML, so either works.
func Open(filename string) (*Config, error) {
	return Load(filename, nil)
}

// Load reads configuration from defaults, filename, ALMANAC_ environment
// variables and explicitly set flags, each overriding the last. An empty
// filename skips the file. A double underscore in a variable name descends
// into a section, so ALMANAC_LOCATION__LATITUDE sets location.latitude.
func Load(filename string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]interface{}{
		"verbose": false,
		"dut1":    0.0,
		"listen":  DefaultListen,
	}, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if filename != "" {
		err = k.Load(file.Provider(filename), yaml.Parser())
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "latitude", "longitude":
				key = "location." + key
			}
			return key, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var config Config
	err = k.Unmarshal("", &config)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("latitude %g out of range", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("longitude %g out of range", c.Location.Longitude)
	}

	if _, err := c.LeapTable(); err != nil {
		return err
	}

	parser := almanac.ScheduleParser{Location: c.Location}
	for i, job := range c.Jobs {
		name := job.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}

		if _, err := parser.Parse(job.Schedule); err != nil {
			return fmt.Errorf("job %s: %w", name, err)
		}
		if _, err := job.ParseScales(); err != nil {
			return fmt.Errorf("job %s: %w", name, err)
		}
		if job.Precision < -5 || job.Precision > 9 {
			return fmt.Errorf("job %s: precision %d outside -5 to 9", name, job.Precision)
		}
	}

	return nil
}

// ParseScales resolves the job's scale names. No names means every scale.
func (j Job) ParseScales() ([]timescale.Scale, error) {
	if len(j.Scales) == 0 {
		return timescale.Scales, nil
	}

	scales := make([]timescale.Scale, 0, len(j.Scales))
	for _, name := range j.Scales {
		s, err := timescale.ParseScale(name)
		if err != nil {
			return nil, err
		}
		scales = append(scales, s)
	}
	return scales, nil
}

// LeapTable returns the table the configuration asks for. Configured rows
// replace the builtin table when ReplaceLeapSeconds is set; otherwise they
// are merged into it, overriding builtin rows for the same month. A nil
// table means the builtin one.
func (c *Config) LeapTable() ([]leap.Entry, error) {
	if len(c.LeapSeconds) == 0 {
		if c.ReplaceLeapSeconds {
			return nil, fmt.Errorf("replace_leap_seconds set without leap_seconds")
		}
		return nil, nil
	}

	byMonth := make(map[int]leap.Entry)
	if !c.ReplaceLeapSeconds {
		for _, e := range leap.Builtin() {
			byMonth[12*e.Year+e.Month] = e
		}
	}
	for _, ls := range c.LeapSeconds {
		if ls.Month < 1 || ls.Month > 12 {
			return nil, fmt.Errorf("leap second %04d-%02d: invalid month", ls.Year, ls.Month)
		}
		byMonth[12*ls.Year+ls.Month] = leap.Entry{
			Year:       ls.Year,
			Month:      ls.Month,
			DeltaAT:    ls.DeltaAT,
			DriftEpoch: ls.DriftEpoch,
			DriftRate:  ls.DriftRate,
		}
	}

	entries := make([]leap.Entry, 0, len(byMonth))
	for _, e := range byMonth {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return 12*entries[i].Year+entries[i].Month < 12*entries[j].Year+entries[j].Month
	})

	if err := leap.Validate(entries); err != nil {
		return nil, fmt.Errorf("leap seconds: %w", err)
	}
	return entries, nil
}
