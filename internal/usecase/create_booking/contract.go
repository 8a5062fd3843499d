package create_booking

import (
	"context"
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create создает новое бронирование
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByFacilityWithFilter получает бронирования объекта на конкретную дату
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
}

// FacilityServiceClient интерфейс клиента сервиса управления объектами
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в serializable транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс для уведомления подписчиков об изменениях
type Notifier interface {
	BookingChanged(ev notifier.Event)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
