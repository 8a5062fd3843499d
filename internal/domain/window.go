package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/tkhmelev/RCP-FacilityService/pkg/types"
)

var (
	// ErrWindowFormat возвращается, когда строка расписания не соответствует
	// шаблону HH:MM-HH:MM
	ErrWindowFormat = errors.New("operating window: invalid format, expected HH:MM-HH:MM")

	// ErrWindowTime возвращается, когда одна из границ окна не является
	// валидным временем суток
	ErrWindowTime = errors.New("operating window: invalid time of day")

	// ErrWindowOrder возвращается, когда время закрытия не позже времени открытия
	ErrWindowOrder = errors.New("operating window: close time must be after open time")
)

// OperatingWindow is the validated open/close pair of a facility's day.
// Slots are generated only inside [Open, Close).
type OperatingWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// ParseOperatingWindow parses a facility's operating-hours description,
// e.g. "09:00-21:00". It is a pure function: a malformed description is
// a configuration error, distinct from a validly empty slot grid.
func ParseOperatingWindow(s string) (OperatingWindow, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return OperatingWindow{}, ErrWindowFormat
	}

	// Шаблон строгий: обе части ровно HH:MM, без пробелов
	for _, p := range parts {
		if len(p) != 5 || p[2] != ':' {
			return OperatingWindow{}, ErrWindowFormat
		}
		for _, i := range []int{0, 1, 3, 4} {
			if p[i] < '0' || p[i] > '9' {
				return OperatingWindow{}, ErrWindowFormat
			}
		}
	}

	open, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return OperatingWindow{}, ErrWindowTime
	}

	closeTime, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return OperatingWindow{}, ErrWindowTime
	}

	if !closeTime.IsAfter(open) {
		return OperatingWindow{}, ErrWindowOrder
	}

	return OperatingWindow{Open: open, Close: closeTime}, nil
}

// Minutes returns the window length in minutes
func (w OperatingWindow) Minutes() int {
	return w.Open.MinutesUntil(w.Close)
}

// OpenAt combines the opening time with a calendar date
func (w OperatingWindow) OpenAt(date time.Time) time.Time {
	return w.Open.At(date)
}

// CloseAt combines the closing time with a calendar date
func (w OperatingWindow) CloseAt(date time.Time) time.Time {
	return w.Close.At(date)
}

// Slots generates the ordered slot grid of the window: contiguous
// intervals of slotMinutes starting at Open, no overlaps, no gaps. A slot
// is emitted only if its end is not after Close; a trailing partial slot
// is dropped, never emitted short. A window shorter than one slot yields
// an empty grid, which is a validly closed day, not an error.
func (w OperatingWindow) Slots(slotMinutes int) []Slot {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	openMin := w.Open.Minutes()
	closeMin := w.Close.Minutes()

	slots := make([]Slot, 0, (closeMin-openMin)/slotMinutes)

	for start := openMin; start+slotMinutes <= closeMin; start += slotMinutes {
		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, Slot{
			StartTime:       startTime,
			DurationMinutes: slotMinutes,
		})
	}

	return slots
}

// FindSlot returns the generated slot starting at the given time, if any
func (w OperatingWindow) FindSlot(slotMinutes int, start types.TimeString) (Slot, bool) {
	for _, slot := range w.Slots(slotMinutes) {
		if slot.StartTime == start {
			return slot, true
		}
	}
	return Slot{}, false
}

// IsConfigError reports whether err is a facility-configuration error
// from ParseOperatingWindow
func IsConfigError(err error) bool {
	return errors.Is(err, ErrWindowFormat) ||
		errors.Is(err, ErrWindowTime) ||
		errors.Is(err, ErrWindowOrder)
}
