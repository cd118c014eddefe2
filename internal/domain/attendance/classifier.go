package attendance

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// LateCutoffMinutes is the fixed cutoff for the late classification:
// 8:30 AM expressed as minutes since midnight. The boundary itself is
// still present (inclusive cutoff).
const LateCutoffMinutes = 510

var clockTimeRegex = regexp.MustCompile(`(\d+):(\d+)\s*(AM|PM)`)

// ParseClockTime parses a 12-hour clock string such as "08:15 AM" and
// returns minutes since midnight. 12 AM maps to hour 0, 12 PM stays 12,
// any other PM hour gets 12 added.
func ParseClockTime(s string) (int, error) {
	m := clockTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	switch m[3] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	return hour*60 + minute, nil
}

// ClassifyMinutes classifies minutes since midnight against the cutoff.
func ClassifyMinutes(minutes int) Status {
	if minutes > LateCutoffMinutes {
		return StatusLate
	}
	return StatusPresent
}

// ClassifyClockTime classifies a 12-hour check-in time string. An
// unparseable string classifies as present; this is the legacy fallback
// used by the check-in path. Callers that need to reject bad input
// should use ParseClockTime directly.
func ClassifyClockTime(checkInTime string) Status {
	minutes, err := ParseClockTime(checkInTime)
	if err != nil {
		return StatusPresent
	}
	return ClassifyMinutes(minutes)
}

// FormatClockTime renders t in the 12-hour clock format stored on records.
func FormatClockTime(t time.Time) string {
	return t.Format("03:04 PM")
}
