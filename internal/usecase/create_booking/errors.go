package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrFacilityMisconfigured возвращается, когда расписание объекта не парсится
	ErrFacilityMisconfigured = errors.New("create_booking: facility operating window is misconfigured")

	// ErrNotASlot возвращается, когда запрошенное время не совпадает
	// ни с одним слотом текущей сетки объекта
	ErrNotASlot = errors.New("create_booking: requested time does not match a slot")

	// ErrSlotInPast возвращается при попытке бронирования прошедшего слота
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrCapacityExceeded возвращается, когда заявка не помещается в слот
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrQuotaExceeded возвращается при превышении дневной квоты жителя
	ErrQuotaExceeded = errors.New("create_booking: daily quota exceeded")

	// ErrSlotConflict возвращается, когда конкурентные заявки на один
	// слот не удалось сериализовать за отведенное число повторов
	ErrSlotConflict = errors.New("create_booking: slot booking conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
