// Package appointment defines the core domain types for turnos.
package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucasnevarez/turnos/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyPatient      = errors.New("patient name cannot be empty")
	ErrInvalidType       = errors.New("unknown appointment type")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrSlotConflict        = errors.New("time slot overlaps with existing appointment")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Status represents the state of an appointment as reported by the API.
type Status string

const (
	StatusBooked     Status = "Booked"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
	StatusNoShow     Status = "No Show"
	StatusInProgress Status = "In Progress"
)

// Blocks reports whether an appointment in this status still occupies its
// slot for conflict purposes. Cancelled and no-show appointments release
// theirs.
func (s Status) Blocks() bool {
	switch s {
	case StatusCancelled, StatusNoShow:
		return false
	default:
		return true
	}
}

// Type represents the kind of visit.
type Type string

const (
	TypeConsultation Type = "consultation"
	TypeFollowUp     Type = "follow-up"
	TypeCheckup      Type = "checkup"
	TypeProcedure    Type = "procedure"
)

// Types lists the visit types accepted by the booking form.
func Types() []Type {
	return []Type{TypeConsultation, TypeFollowUp, TypeCheckup, TypeProcedure}
}

// ParseType validates a visit type string.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if string(t) == strings.ToLower(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Appointment is a booked visit owned by the remote API. The scheduling
// core never mutates one; it only reads it for conflict checks, slot
// indexing and layout.
type Appointment struct {
	ID          string
	Date        time.Time
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	Status      Status
	PatientName string
	Title       string
	Type        Type
	ClinicianID string
	CreatedAt   time.Time
}

// Duration returns the appointment duration in minutes.
// Returns 0 if either time string is malformed.
func (a *Appointment) Duration() int {
	start, ok1 := ParseClock(a.StartTime)
	end, ok2 := ParseClock(a.EndTime)
	if !ok1 || !ok2 || end <= start {
		return 0
	}
	return end - start
}

// OnDate reports whether the appointment falls on the given calendar day.
// The appointment's own Date field is ground truth even when callers
// derived the date elsewhere.
func (a *Appointment) OnDate(date time.Time) bool {
	return dateutil.SameDay(a.Date, date)
}

// TimeSlot is a grid-aligned candidate selection produced by a finished
// drag gesture. It is immutable once reported to the host.
type TimeSlot struct {
	Date      time.Time
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// Validate checks the slot invariants: well-formed times with start
// strictly before end.
func (s TimeSlot) Validate() error {
	if err := validateClock(s.StartTime); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := validateClock(s.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if s.EndTime <= s.StartTime {
		return ErrEndBeforeStart
	}
	return nil
}

// DurationMinutes returns the slot length in minutes.
func (s TimeSlot) DurationMinutes() int {
	return TimeToMinutes(s.EndTime) - TimeToMinutes(s.StartTime)
}

func validateClock(s string) error {
	if _, ok := ParseClock(s); !ok {
		return ErrInvalidTimeFormat
	}
	return nil
}

// New creates an Appointment with validation. date can be empty (defaults
// to today) or YYYY-MM-DD; start and end are HH:MM with end after start.
func New(patientName, title, typ, date, start, end string) (*Appointment, error) {
	if strings.TrimSpace(patientName) == "" {
		return nil, ErrEmptyPatient
	}

	visitType, err := ParseType(typ)
	if err != nil {
		return nil, err
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if err := validateClock(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := validateClock(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return nil, ErrEndBeforeStart
	}

	return &Appointment{
		Date:        day,
		StartTime:   start,
		EndTime:     end,
		Status:      StatusBooked,
		PatientName: patientName,
		Title:       title,
		Type:        visitType,
		CreatedAt:   time.Now(),
	}, nil
}
