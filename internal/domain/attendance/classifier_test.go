package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"08:30 AM", 510, false},
		{"08:31 AM", 511, false},
		{"12:00 AM", 0, false},
		{"12:00 PM", 720, false},
		{"01:05 PM", 785, false},
		{"11:59 PM", 1439, false},
		{"9:05AM", 545, false}, // no space before meridiem
		{"not a time", 0, true},
		{"", 0, true},
		{"25:00", 0, true}, // missing meridiem
	}

	for _, c := range cases {
		got, err := ParseClockTime(c.input)
		if c.wantErr {
			assert.Error(t, err, "input %q", c.input)
			continue
		}
		assert.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got, "input %q", c.input)
	}
}

func TestClassifyClockTime_Boundaries(t *testing.T) {
	cases := []struct {
		input string
		want  Status
	}{
		{"08:30 AM", StatusPresent}, // inclusive cutoff
		{"08:31 AM", StatusLate},
		{"08:29 AM", StatusPresent},
		{"12:00 AM", StatusPresent},
		{"12:00 PM", StatusLate},
		{"01:05 PM", StatusLate},
		{"09:15 AM", StatusLate},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyClockTime(c.input), "input %q", c.input)
	}
}

func TestClassifyClockTime_UnparseableDefaultsToPresent(t *testing.T) {
	assert.Equal(t, StatusPresent, ClassifyClockTime("garbage"))
	assert.Equal(t, StatusPresent, ClassifyClockTime(""))
}

func TestFormatClockTime_RoundTrips(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 15, 0, 0, time.UTC)
	s := FormatClockTime(at)
	assert.Equal(t, "09:15 AM", s)

	minutes, err := ParseClockTime(s)
	assert.NoError(t, err)
	assert.Equal(t, 9*60+15, minutes)
}
