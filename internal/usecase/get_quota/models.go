package get_quota

import "time"

// Request модель запроса дневной квоты жителя
type Request struct {
	UserID     int64     // ID жителя
	FacilityID int64     // ID объекта
	Date       time.Time // Дата (без времени)
}

// Response модель ответа с состоянием дневной квоты
type Response struct {
	UserID           int64     // ID жителя
	FacilityID       int64     // ID объекта
	Date             time.Time // Дата, на которую считалась квота
	QuotaMinutes     int       // Размер дневной квоты
	UsedMinutes      int       // Использованные минуты (подтвержденные бронирования)
	RemainingMinutes int       // Оставшиеся минуты, не меньше нуля
	RemainingHours   int       // Оставшиеся часы для отображения
	RemainingRest    int       // Остаток минут сверх целых часов
}
