package grid

import (
	"time"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// AvailableStartTimes returns every "HH:MM" start time inside the horizon
// where a booking of durationMinutes would fit without overlapping a
// blocking appointment on date. Candidates step by the grid granularity;
// half-open interval semantics, so a slot may start exactly where another
// appointment ends.
func AvailableStartTimes(cfg Config, date time.Time, durationMinutes int, appts []*appointment.Appointment) []string {
	if durationMinutes <= 0 {
		return nil
	}

	var starts []string
	horizonEnd := cfg.StartMinutes() + cfg.HorizonMinutes()
	for mins := cfg.StartMinutes(); mins+durationMinutes <= horizonEnd; mins += cfg.Granularity {
		start := appointment.MinutesToTime(mins)
		end := appointment.MinutesToTime(mins + durationMinutes)
		if !appointment.HasConflict(date, start, end, appts) {
			starts = append(starts, start)
		}
	}
	return starts
}
