package get_available_slots

import (
	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
)

// aggregateOccupancy считает занятость каждого слота сетки: сумму
// partyCount подтвержденных бронирований, границы которых в точности
// совпадают с границами слота. Бронирование, не совпадающее ни с одним
// слотом текущей сетки (например, после смены конфигурации объекта),
// не учитывается ни в одном слоте и возвращается отдельным списком как
// аномалия конфигурации - оно не подмешивается в соседний слот.
func aggregateOccupancy(
	slots []domain.Slot,
	bookings []*domain.Booking,
	capacity int,
) ([]domain.SlotOccupancy, []*domain.Booking) {
	occupancies := make([]domain.SlotOccupancy, len(slots))
	for i, slot := range slots {
		occupancies[i] = domain.OccupancyFor(slot, bookings, capacity)
	}

	var misaligned []*domain.Booking

	for _, booking := range bookings {
		if !booking.IsConfirmed() {
			continue
		}
		matched := false
		for _, slot := range slots {
			if booking.MatchesSlot(slot) {
				matched = true
				break
			}
		}
		if !matched {
			misaligned = append(misaligned, booking)
		}
	}

	return occupancies, misaligned
}
