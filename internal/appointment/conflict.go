package appointment

import "time"

// FindConflict returns the first appointment on date whose interval
// overlaps the half-open candidate [start, end). Cancelled and no-show
// appointments do not block; appointments on other dates are ignored.
// Returns nil when the candidate is clean or malformed.
func FindConflict(date time.Time, start, end string, appts []*Appointment) *Appointment {
	return findConflict(date, start, end, appts, false)
}

// FindConflictAny is FindConflict without the status filter: every
// appointment blocks regardless of status.
func FindConflictAny(date time.Time, start, end string, appts []*Appointment) *Appointment {
	return findConflict(date, start, end, appts, true)
}

// HasConflict reports whether the candidate range collides with any
// blocking appointment on date.
func HasConflict(date time.Time, start, end string, appts []*Appointment) bool {
	return FindConflict(date, start, end, appts) != nil
}

func findConflict(date time.Time, start, end string, appts []*Appointment, any bool) *Appointment {
	candStart, ok1 := ParseClock(start)
	candEnd, ok2 := ParseClock(end)
	if !ok1 || !ok2 || candEnd <= candStart {
		return nil
	}

	for _, a := range appts {
		if a == nil || !a.OnDate(date) {
			continue
		}
		if !any && !a.Status.Blocks() {
			continue
		}
		aptStart, ok := ParseClock(a.StartTime)
		if !ok {
			continue
		}
		dur := a.Duration()
		if dur <= 0 {
			continue
		}
		aptEnd := aptStart + dur
		// Half-open intervals: touching endpoints are not a conflict.
		if candStart < aptEnd && candEnd > aptStart {
			return a
		}
	}
	return nil
}
