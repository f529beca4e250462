// Package timescale converts two-part Julian dates between the atomic,
// dynamical and rotational time scales.
//
// Most conversions are fixed offsets or linear rates. Those touching UTC
// consult a leap second table, which is why they hang off a Converter.
package timescale

import (
	"fmt"
	"strings"
)

type Scale uint8

const (
	TAI Scale = iota + 1 // international atomic time
	TT                   // terrestrial time
	TCG                  // geocentric coordinate time
	TDB                  // barycentric dynamical time
	TCB                  // barycentric coordinate time
	UT1                  // universal time, earth rotation
	UTC                  // coordinated universal time
)

var scaleNames = map[Scale]string{
	TAI: "TAI",
	TT:  "TT",
	TCG: "TCG",
	TDB: "TDB",
	TCB: "TCB",
	UT1: "UT1",
	UTC: "UTC",
}

// Scales lists every supported scale
var Scales = []Scale{TAI, TT, TCG, TDB, TCB, UT1, UTC}

func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scale(%d)", uint8(s))
}

// ParseScale looks up a scale by name, ignoring case
func ParseScale(name string) (Scale, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for s, n := range scaleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown time scale %q", name)
}

func (s Scale) MarshalText() ([]byte, error) {
	if _, ok := scaleNames[s]; !ok {
		return nil, fmt.Errorf("unknown time scale %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Scale) UnmarshalText(text []byte) error {
	parsed, err := ParseScale(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
