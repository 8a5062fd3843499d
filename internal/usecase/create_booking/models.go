package create_booking

import (
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	"github.com/tkhmelev/RCP-FacilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64            // ID жителя
	FacilityID  int64            // ID объекта
	BookingDate time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота
	PartyCount  int              // Размер группы
	Notes       *string          // Комментарий жителя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking // Созданное бронирование
	Quota   domain.QuotaState
}
