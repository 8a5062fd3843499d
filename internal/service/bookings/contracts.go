package bookings

import (
	"context"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
}

// FacilityServiceClient интерфейс клиента сервиса управления объектами
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
}

// Notifier интерфейс для уведомления подписчиков об изменениях
type Notifier interface {
	BookingChanged(ev notifier.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
