package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	err := Errorf("cal2jd", ErrInvalidCalendarField, "month %d", 13)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrInvalidCalendarField))
	assert.False(t, errors.Is(err, ErrOutOfRangeJulianDate))
	assert.Equal(t, "cal2jd: invalid calendar field: month 13", err.Error())

	wrapped := fmt.Errorf("convert: %w", err)
	var se *Error
	require.True(t, errors.As(wrapped, &se))
	assert.Equal(t, "cal2jd", se.Op)
}

func TestWarning_String(t *testing.T) {
	assert.Equal(t, "ok", Warning(0).String())
	assert.Equal(t, "dubious year", DubiousYear.String())
	assert.Equal(t, "dubious year, time beyond end of day", (DubiousYear | BeyondDayEnd).String())
}

func TestWarning_Has(t *testing.T) {
	w := DubiousYear | LeapRamp
	assert.True(t, w.Has(DubiousYear))
	assert.True(t, w.Has(LeapRamp))
	assert.False(t, w.Has(BeyondDayEnd))
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		w    Warning
		err  error
		want int
	}{
		{"ok", 0, nil, 0},
		{"warning", DubiousYear, nil, 1},
		{"combined warnings", DubiousYear | BeyondDayEnd, nil, 5},
		{"calendar", 0, Errorf("op", ErrInvalidCalendarField, ""), -1},
		{"range", 0, Errorf("op", ErrOutOfRangeJulianDate, ""), -2},
		{"lookup", DubiousYear, Errorf("op", ErrLookupFailure, ""), -3},
		{"other", 0, errors.New("boom"), -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.w, tt.err))
		})
	}
}
