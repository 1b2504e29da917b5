// Package grid implements the time-slot interaction engine shared by the
// day, week and month calendar views: slot quantization, drag gesture
// recognition and render geometry. All three views depend on this one
// package so their grid math can never drift apart.
package grid

import (
	"errors"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// Configuration errors.
var (
	ErrInvalidHours       = errors.New("start hour must be before end hour")
	ErrInvalidGranularity = errors.New("granularity must divide 60 evenly")
)

// DefaultGranularity is the default slot duration in minutes.
const DefaultGranularity = 15

// Config defines the scheduling horizon of a calendar view: which hours a
// day column covers and how fine the slots are. It is immutable for the
// lifetime of a view; changing working hours produces a new Config and
// invalidates any in-flight drag.
type Config struct {
	StartHour   int // e.g. 8
	EndHour     int // e.g. 18, exclusive
	Granularity int // minutes per slot, divides 60
}

// NewConfig creates a validated Config.
func NewConfig(startHour, endHour, granularity int) (Config, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return Config{}, ErrInvalidHours
	}
	if granularity <= 0 || 60%granularity != 0 {
		return Config{}, ErrInvalidGranularity
	}
	return Config{StartHour: startHour, EndHour: endHour, Granularity: granularity}, nil
}

// SlotCount returns the number of slots in the horizon.
func (c Config) SlotCount() int {
	return (c.EndHour - c.StartHour) * 60 / c.Granularity
}

// HorizonMinutes returns the total minutes the grid covers.
func (c Config) HorizonMinutes() int {
	return (c.EndHour - c.StartHour) * 60
}

// StartMinutes returns the horizon start as minutes since midnight.
func (c Config) StartMinutes() int {
	return c.StartHour * 60
}

// SlotIndexFromTime converts a "HH:MM" time to its slot index. Times
// outside the horizon clamp to the nearest valid slot rather than
// failing; the UI stays responsive and callers that want to drop
// out-of-range times can compare against TimeFromSlotIndex. Malformed
// times clamp to slot 0.
func (c Config) SlotIndexFromTime(t string) int {
	mins, ok := appointment.ParseClock(t)
	if !ok {
		return 0
	}
	index := (mins - c.StartMinutes()) / c.Granularity
	return c.clampIndex(index)
}

// TimeFromSlotIndex converts a slot index back to its "HH:MM" start time.
// This is the exact inverse of SlotIndexFromTime for indices in
// [0, SlotCount()).
func (c Config) TimeFromSlotIndex(index int) string {
	mins := c.StartMinutes() + index*c.Granularity
	return appointment.MinutesToTime(mins)
}

// SlotIndexFromPixelOffset translates a pointer offset within a day
// column to a slot index. Every view routes its pointer coordinates
// through this one function; if drag handling and appointment rendering
// quantized independently they would visually disagree. Out-of-range
// offsets clamp, never fail: fast drags routinely overshoot the surface.
func (c Config) SlotIndexFromPixelOffset(y, containerHeight float64) int {
	count := c.SlotCount()
	if containerHeight <= 0 || count <= 0 {
		return 0
	}
	index := int(y / (containerHeight / float64(count)))
	return c.clampIndex(index)
}

// FractionalPosition returns a time's vertical position within the
// horizon as a fraction in [0, 1], for absolute top-offset placement.
// Times before the horizon pin to 0 and times after it pin to 1; an
// appointment outside working hours stays visible at the nearest edge
// instead of rendering off-screen.
func (c Config) FractionalPosition(t string) float64 {
	mins, ok := appointment.ParseClock(t)
	if !ok {
		return 0
	}
	frac := float64(mins-c.StartMinutes()) / float64(c.HorizonMinutes())
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// ContainsTime reports whether a "HH:MM" time lies inside the horizon.
func (c Config) ContainsTime(t string) bool {
	mins, ok := appointment.ParseClock(t)
	if !ok {
		return false
	}
	return mins >= c.StartMinutes() && mins < c.StartMinutes()+c.HorizonMinutes()
}

func (c Config) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if last := c.SlotCount() - 1; index > last {
		return last
	}
	return index
}
