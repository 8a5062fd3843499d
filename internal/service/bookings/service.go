package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	bookingRepo "github.com/tkhmelev/RCP-FacilityService/internal/infra/storage/booking"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
	"github.com/tkhmelev/RCP-FacilityService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	notifier       Notifier
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	changeNotifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		notifier:       changeNotifier,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - житель может видеть только своё бронирование
// или если он является оператором объекта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований жителя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования объекта с гибкой фильтрацией
// Поддерживает фильтрацию по жителю, периоду, статусу и включению отмененных
// Доступно только операторам объекта
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetFacilityBookings: fetching bookings for facility=%d, user=%d", req.FacilityID, req.UserID)
	if req.ResidentID != nil {
		logMsg += fmt.Sprintf(", resident=%d", *req.ResidentID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа оператора
	if _, err := s.checkOperatorAccess(ctx, req.FacilityID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityBookings: successfully fetched %d bookings for facility=%d", len(bookings), req.FacilityID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Житель может отменить только своё бронирование (cancelled_by_resident)
// Оператор объекта может отменить любое бронирование (cancelled_by_operator)
// Повторная отмена уже отмененного бронирования - успешный no-op
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	if booking.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByResident
	} else {
		// Проверяем, является ли пользователь оператором объекта
		if _, err := s.checkOperatorAccess(ctx, booking.FacilityID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByOperator
	}

	// Отмена идемпотентна: уже отмененное бронирование не меняется,
	// исходный статус отмены сохраняется
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d already cancelled (status=%s), nothing to do", bookingID, booking.Status)
		return nil
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)

	// Уведомляем подписчиков: слот освободился
	s.notifier.BookingChanged(notifier.Event{
		Type:       notifier.EventBookingCancelled,
		FacilityID: booking.FacilityID,
		Date:       booking.BookingDate.Format(domain.DateFormat),
	})

	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Житель может видеть своё бронирование или если он оператор объекта
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if _, err := s.checkOperatorAccess(ctx, booking.FacilityID, userID); err != nil {
		// Ошибка уже залогирована в checkOperatorAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOperatorAccess проверяет, что пользователь является оператором объекта
func (s *Service) checkOperatorAccess(ctx context.Context, facilityID int64, userID int64) (*domain.Facility, error) {
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("checkOperatorAccess: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("checkOperatorAccess: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: checkOperatorAccess - failed to get facility: %v", ErrInternal, err)
	}

	if facility.IsOperator(userID) {
		s.logger.Info("checkOperatorAccess: user=%d is operator of facility=%d", userID, facilityID)
		return facility, nil
	}

	s.logger.Warn("checkOperatorAccess: user=%d is not an operator of facility=%d", userID, facilityID)
	return nil, ErrAccessDenied
}
