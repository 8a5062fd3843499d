package get_available_slots

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("get_available_slots: facility not found")

	// ErrFacilityMisconfigured возвращается, когда расписание объекта
	// не парсится. Отличается от валидно пустой сетки слотов: пустая
	// сетка - это закрытый день, а не ошибка конфигурации.
	ErrFacilityMisconfigured = errors.New("get_available_slots: facility operating window is misconfigured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
