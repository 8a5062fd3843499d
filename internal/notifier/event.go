// Package notifier рассылает события изменения бронирований подписанным
// наблюдателям. Канал best-effort: потеря события никогда не влияет на
// корректность, потому что наблюдатели по событию перечитывают
// актуальное состояние, а не доверяют полезной нагрузке.
package notifier

// EventType тип события изменения
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
)

// Event уведомление об изменении бронирований объекта.
// Несет только подсказку "перечитай состояние": идентификатор объекта
// и дату, которой коснулось изменение.
type Event struct {
	Type       EventType `json:"type"`
	FacilityID int64     `json:"facilityId"`
	Date       string    `json:"date"` // YYYY-MM-DD
}
