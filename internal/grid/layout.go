package grid

import (
	"math"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// Layout clamp defaults. Displayed height is deliberately not always
// proportional to true duration: a 5-minute visit must stay clickable and
// a multi-hour procedure must not swallow the whole column.
const (
	DefaultMinHeightPercent = 3.0
	DefaultMaxHeightPercent = 15.0
)

// Layout maps an appointment's time and duration to render geometry
// inside an absolutely positioned day column.
type Layout struct {
	Config     Config
	MinPercent float64 // floor for HeightPercent; 0 means DefaultMinHeightPercent
	MaxPercent float64 // ceiling for HeightPercent; 0 means DefaultMaxHeightPercent
}

// NewLayout creates a Layout with the default clamps.
func NewLayout(cfg Config) Layout {
	return Layout{
		Config:     cfg,
		MinPercent: DefaultMinHeightPercent,
		MaxPercent: DefaultMaxHeightPercent,
	}
}

// TopOffsetPercent returns the top offset of an appointment within its
// column as a percentage. Appointments starting before the horizon pin
// to 0; malformed times degrade to 0.
func (l Layout) TopOffsetPercent(a *appointment.Appointment) float64 {
	if a == nil {
		return 0
	}
	return clampFloat(l.Config.FractionalPosition(a.StartTime)*100, 0, 100)
}

// HeightPercent returns the rendered height of an appointment as a
// percentage of the column, clamped to [MinPercent, MaxPercent].
// Zero-duration (malformed) appointments render at the minimum height.
func (l Layout) HeightPercent(a *appointment.Appointment) float64 {
	minP, maxP := l.clamps()
	if a == nil {
		return minP
	}
	raw := float64(a.Duration()) / float64(l.Config.HorizonMinutes()) * 100
	return clampFloat(raw, minP, maxP)
}

// HeightPixels is the variant for grids that size rows in fixed pixels:
// the duration is rounded to whole slots and multiplied by the row
// height, clamped to [minPx, maxPx].
func (l Layout) HeightPixels(a *appointment.Appointment, rowHeightPx, minPx, maxPx int) int {
	if a == nil {
		return minPx
	}
	slots := int(math.Round(float64(a.Duration()) / float64(l.Config.Granularity)))
	px := slots * rowHeightPx
	if px < minPx {
		return minPx
	}
	if px > maxPx {
		return maxPx
	}
	return px
}

// SlotSpan returns how many grid rows an appointment covers, rounding up
// so partial slots still occupy a row. Always at least 1.
func (l Layout) SlotSpan(a *appointment.Appointment) int {
	if a == nil {
		return 1
	}
	dur := a.Duration()
	if dur <= 0 {
		return 1
	}
	span := dur / l.Config.Granularity
	if dur%l.Config.Granularity != 0 {
		span++
	}
	return span
}

func (l Layout) clamps() (minP, maxP float64) {
	minP = l.MinPercent
	if minP <= 0 {
		minP = DefaultMinHeightPercent
	}
	maxP = l.MaxPercent
	if maxP <= 0 {
		maxP = DefaultMaxHeightPercent
	}
	return minP, maxP
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
