package domain

import "github.com/tkhmelev/RCP-FacilityService/pkg/types"

// Slot is a derived, non-persisted half-open booking interval
// [StartTime, StartTime+DurationMinutes) within a facility's
// operating window on a specific date
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime returns the exclusive end boundary of the slot
func (s Slot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}

// SlotOccupancy pairs a slot with its aggregate confirmed headcount
type SlotOccupancy struct {
	Slot
	BookedCount int // Σ partyCount over exactly matching confirmed bookings
	Capacity    int // facility capacity for the slot
}

// FreeSpots returns the remaining headroom in the slot
func (o *SlotOccupancy) FreeSpots() int {
	free := o.Capacity - o.BookedCount
	if free < 0 {
		return 0
	}
	return free
}

// IsFull returns true if the slot has no free spots
func (o *SlotOccupancy) IsFull() bool {
	return o.BookedCount >= o.Capacity
}

// HasRoomFor reports whether a party of the given size still fits
func (o *SlotOccupancy) HasRoomFor(partyCount int) bool {
	return o.BookedCount+partyCount <= o.Capacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (o *SlotOccupancy) OccupancyRate() float64 {
	if o.Capacity == 0 {
		return 0
	}
	return float64(o.BookedCount) / float64(o.Capacity) * 100
}

// OccupancyFor derives the occupancy of one slot from the booking set of
// a facility/date. Only confirmed bookings whose bounds exactly equal the
// slot's bounds count; overlap without exact alignment never does.
func OccupancyFor(slot Slot, bookings []*Booking, capacity int) SlotOccupancy {
	occ := SlotOccupancy{Slot: slot, Capacity: capacity}
	for _, b := range bookings {
		if b.IsConfirmed() && b.MatchesSlot(slot) {
			occ.BookedCount += b.PartyCount
		}
	}
	return occ
}
