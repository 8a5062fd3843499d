package facilityservice

// Facility модель объекта из сервиса управления объектами.
// SlotMinutes и Capacity опциональны: при отсутствии применяются
// дефолты на границе интеграции (один раз, а не в каждом месте чтения).
type Facility struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	OperatingWindow string  `json:"operatingWindow"` // "09:00-21:00"
	SlotMinutes     *int    `json:"slotMinutes,omitempty"`
	Capacity        *int    `json:"capacity,omitempty"`
	OperatorIDs     []int64 `json:"operatorIds"`
}

// ErrorResponse модель ошибки от сервиса управления объектами
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
