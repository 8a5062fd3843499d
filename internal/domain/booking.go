package domain

import (
	"time"

	"github.com/tkhmelev/RCP-FacilityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCancelledByResident BookingStatus = "cancelled_by_resident"
	StatusCancelledByOperator BookingStatus = "cancelled_by_operator"
)

// Booking represents a facility reservation made by a resident.
// Bookings are never deleted, only cancelled, so the table doubles
// as the audit history for the facility.
type Booking struct {
	ID              int64
	FacilityID      int64
	UserID          int64
	BookingDate     time.Time // date only, facility-local calendar day
	StartTime       types.TimeString
	DurationMinutes int
	PartyCount      int
	Notes           *string
	Status          BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking currently counts against
// slot occupancy and the resident's daily quota
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled by
// either the resident or a facility operator
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByResident || b.Status == StatusCancelledByOperator
}

// EndTime returns the wall-clock end of the booking interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// MatchesSlot reports whether the booking's interval exactly equals the
// slot's bounds. Occupancy is computed by exact boundary equality: a
// booking that does not align with any currently generated slot counts
// against no slot at all.
func (b *Booking) MatchesSlot(slot Slot) bool {
	return b.StartTime == slot.StartTime && b.DurationMinutes == slot.DurationMinutes
}

// FacilityBookingsFilter фильтр для выборки бронирований объекта
type FacilityBookingsFilter struct {
	FacilityID       int64          // Обязательный параметр
	UserID           *int64         // Фильтр по жителю (опционально)
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
