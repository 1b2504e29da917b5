package appointment

import "time"

// MatchMode selects how appointments are bucketed into grid slots.
type MatchMode int

const (
	// MatchExact includes an appointment only when its start time equals
	// the slot start exactly, for surfaces whose rows line up one-to-one
	// with start times.
	MatchExact MatchMode = iota

	// MatchContains includes an appointment when its start time falls
	// anywhere inside [slotStart, slotStart+granularity). Coarser views
	// use this to bucket precise start times into the correct row.
	MatchContains
)

// ForSlot returns the appointments that should render in the slot
// beginning at slotStart on date, in their input order. Appointments with
// malformed time strings never match. The caller handles visual stacking
// when several land in the same slot.
func ForSlot(date time.Time, slotStart string, granularity int, appts []*Appointment, mode MatchMode) []*Appointment {
	slotMins, ok := ParseClock(slotStart)
	if !ok || granularity <= 0 {
		return nil
	}

	var result []*Appointment
	for _, a := range appts {
		if a == nil || !a.OnDate(date) {
			continue
		}
		aptMins, ok := ParseClock(a.StartTime)
		if !ok {
			continue
		}
		switch mode {
		case MatchExact:
			if aptMins == slotMins {
				result = append(result, a)
			}
		case MatchContains:
			if aptMins >= slotMins && aptMins < slotMins+granularity {
				result = append(result, a)
			}
		}
	}
	return result
}
