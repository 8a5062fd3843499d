package domain

// Default facility configuration values, applied once at the
// facility-management integration boundary when a field is unset
const (
	DefaultSlotMinutes = 60
	DefaultCapacity    = 10
)

// DailyQuotaMinutes суммарный дневной лимит бронирований жителя
// на один объект (в минутах)
const DailyQuotaMinutes = 180

// Business validation constants
const (
	MinPartyCount               = 1
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses список статусов отмененных бронирований.
// Используется при фильтрации для подсчета занятости слотов.
var CancelledStatuses = []BookingStatus{
	StatusCancelledByResident,
	StatusCancelledByOperator,
}
