package appointment

import "fmt"

// ParseClock parses "HH:MM" into minutes since midnight. Longer strings
// such as "09:30:00" or "09:30:00.000000" from the API are truncated to
// their HH:MM prefix. ok is false for anything that does not start with a
// well-formed HH:MM.
func ParseClock(t string) (mins int, ok bool) {
	if len(t) < 5 || t[2] != ':' {
		return 0, false
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, false
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// NormalizeClock reduces any API time string to its "HH:MM" prefix.
// Malformed input is returned unchanged.
func NormalizeClock(t string) string {
	if _, ok := ParseClock(t); ok {
		return t[:5]
	}
	return t
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input so layout math degrades to the top edge
// instead of failing.
func TimeToMinutes(t string) int {
	mins, _ := ParseClock(t)
	return mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TimesOverlap returns true if two half-open time ranges overlap.
// Touching endpoints do not count: [09:00,10:00) and [10:00,11:00) are
// adjacent, not conflicting.
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// OverlapMinutes calculates the overlapping minutes between two time
// ranges. Returns 0 if there is no overlap.
func OverlapMinutes(start1, end1, start2, end2 string) int {
	s1 := TimeToMinutes(start1)
	e1 := TimeToMinutes(end1)
	s2 := TimeToMinutes(start2)
	e2 := TimeToMinutes(end2)

	overlapStart := max(s1, s2)
	overlapEnd := min(e1, e2)

	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// AddMinutes shifts a "HH:MM" time forward by the given minutes, clamped
// to the same day.
func AddMinutes(t string, minutes int) string {
	return MinutesToTime(TimeToMinutes(t) + minutes)
}
