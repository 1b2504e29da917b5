package appointment

import (
	"context"
	"time"
)

// Patient is the minimal patient record the booking form needs.
type Patient struct {
	ID        string
	FirstName string
	LastName  string
}

// FullName returns "First Last".
func (p Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Source is the boundary to wherever appointments live: the remote
// clinic API in normal operation, or the local SQLite store in offline
// and demo modes. The scheduling core only ever reads the records it
// returns.
type Source interface {
	// ListAppointments returns all appointments with a date inside
	// [from, to] inclusive, ordered by date then start time.
	ListAppointments(ctx context.Context, from, to time.Time) ([]*Appointment, error)

	// CreateAppointment books a new appointment. On success the stored
	// record (with its server-assigned ID) is returned; the caller's
	// argument is never mutated.
	CreateAppointment(ctx context.Context, a *Appointment) (*Appointment, error)

	// UpdateAppointment replaces the stored record with the same ID.
	UpdateAppointment(ctx context.Context, a *Appointment) (*Appointment, error)

	// CancelAppointment marks an appointment cancelled.
	// Returns ErrAppointmentNotFound if the ID is unknown.
	CancelAppointment(ctx context.Context, id string) error

	// RescheduleAppointment moves an appointment to a new date and start
	// time. Duration is preserved: the new end time is newStart plus the
	// original duration.
	RescheduleAppointment(ctx context.Context, id string, newDate time.Time, newStart string) (*Appointment, error)

	// SearchPatients returns patients whose name matches the query.
	SearchPatients(ctx context.Context, query string) ([]Patient, error)

	// Close releases any resources held by the source.
	Close() error
}
