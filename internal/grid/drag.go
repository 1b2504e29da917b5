package grid

import (
	"fmt"
	"time"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/dateutil"
)

// ConflictMessageTTL is how long a conflict message stays visible before
// the host clears it.
const ConflictMessageTTL = 3 * time.Second

// Selector is the drag gesture recognizer for free-slot booking. It
// tracks pointer-down/move/up over a grid-bound surface, normalizes the
// drag direction and emits a validated TimeSlot, or surfaces a conflict
// message instead. One Selector is owned by one rendered calendar
// surface; state never crosses surfaces.
//
// States: Idle -> Dragging -> (Resolved | Cancelled) -> Idle. Resolved
// and Cancelled are transient: End always lands back in Idle.
type Selector struct {
	cfg Config

	// appointments supplies the existing bookings for a date at
	// End time; the selector never stores the list itself.
	appointments func(time.Time) []*appointment.Appointment

	// onSlot receives the finalized slot once per clean resolution.
	onSlot func(appointment.TimeSlot)

	dragging bool
	date     time.Time // locked at Begin; Update on another date is a no-op
	anchor   int
	current  int

	conflictMsg string
}

// NewSelector creates a drag selector bound to a grid configuration.
// appointments and onSlot may be nil (no conflict checking, no report),
// which the tests use to exercise the state machine alone.
func NewSelector(cfg Config, appointments func(time.Time) []*appointment.Appointment, onSlot func(appointment.TimeSlot)) *Selector {
	return &Selector{
		cfg:          cfg,
		appointments: appointments,
		onSlot:       onSlot,
	}
}

// Config returns the grid configuration the selector quantizes against.
func (s *Selector) Config() Config {
	return s.cfg
}

// SetConfig swaps the grid configuration. Any in-flight drag was anchored
// in the old geometry, so it is aborted.
func (s *Selector) SetConfig(cfg Config) {
	s.cfg = cfg
	s.Abort()
}

// Dragging reports whether a gesture is in progress.
func (s *Selector) Dragging() bool {
	return s.dragging
}

// Begin starts a gesture at the given pointer offset. Valid only from
// Idle; a Begin while dragging is ignored. Clears any previous conflict
// message.
func (s *Selector) Begin(date time.Time, y, containerHeight float64) {
	if s.dragging {
		return
	}
	s.conflictMsg = ""
	s.date = dateutil.TruncateToDay(date)
	s.anchor = s.cfg.SlotIndexFromPixelOffset(y, containerHeight)
	s.current = s.anchor
	s.dragging = true
}

// Update moves the gesture to a new pointer offset. Valid only while
// Dragging. Calls with a date other than the locked one are ignored: a
// drag never spans multiple date columns.
func (s *Selector) Update(date time.Time, y, containerHeight float64) {
	if !s.dragging {
		return
	}
	if !dateutil.SameDay(date, s.date) {
		return
	}
	s.current = s.cfg.SlotIndexFromPixelOffset(y, containerHeight)
}

// End finishes the gesture. The selected range is normalized so dragging
// upward and downward over the same cells produce the same slot, with an
// exclusive end one slot past the last highlighted cell. A zero-movement
// drag still yields one granularity unit. A conflicting range cancels the
// gesture and surfaces a message instead of reporting a slot.
func (s *Selector) End() {
	if !s.dragging {
		return
	}

	lo := min(s.anchor, s.current)
	hi := max(s.anchor, s.current)
	slot := appointment.TimeSlot{
		Date:      s.date,
		StartTime: s.cfg.TimeFromSlotIndex(lo),
		EndTime:   s.cfg.TimeFromSlotIndex(hi + 1),
	}

	date := s.date
	s.reset()

	if s.appointments != nil {
		if apt := appointment.FindConflict(date, slot.StartTime, slot.EndTime, s.appointments(date)); apt != nil {
			s.conflictMsg = fmt.Sprintf("%s–%s conflicts with %s (%s–%s)",
				slot.StartTime, slot.EndTime, apt.PatientName, apt.StartTime, apt.EndTime)
			return
		}
	}

	if s.onSlot != nil {
		s.onSlot(slot)
	}
}

// Abort cancels the gesture with no report and no conflict message. Used
// when the pointer leaves the surface without a release, or the surface
// is torn down.
func (s *Selector) Abort() {
	if !s.dragging {
		return
	}
	s.reset()
}

// IsIndexSelected reports whether the slot at index on date is inside the
// highlighted band. A pure function of current state so views can
// re-render the band on every pointer move without extra bookkeeping.
// Always false outside a drag.
func (s *Selector) IsIndexSelected(date time.Time, index int) bool {
	if !s.dragging || !dateutil.SameDay(date, s.date) {
		return false
	}
	lo := min(s.anchor, s.current)
	hi := max(s.anchor, s.current)
	return index >= lo && index <= hi
}

// ConflictMessage returns the active conflict message, or "" when none.
func (s *Selector) ConflictMessage() string {
	return s.conflictMsg
}

// ClearConflictMessage clears the conflict message. The host calls this
// after ConflictMessageTTL, or on the next successful interaction.
func (s *Selector) ClearConflictMessage() {
	s.conflictMsg = ""
}

func (s *Selector) reset() {
	s.dragging = false
	s.date = time.Time{}
	s.anchor = 0
	s.current = 0
}
