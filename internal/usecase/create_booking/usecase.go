package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
	"github.com/tkhmelev/RCP-FacilityService/pkg/txmanager"
)

// UseCase use case создания бронирования слота
type UseCase struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	txManager      TransactionManager
	notifier       Notifier
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	changeNotifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		txManager:      txManager,
		notifier:       changeNotifier,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
//
// Проверки допуска выполняются строго по порядку: соответствие сетке,
// прошедшее время, вместимость, квота. Первая сработавшая причина
// отказа и возвращается - при одновременном переполнении слота и
// квоты житель получит отказ по вместимости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, facility=%d, date=%s, start=%s, party=%d",
		req.UserID, req.FacilityID, req.BookingDate.Format(domain.DateFormat), req.StartTime, req.PartyCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем объект и его конфигурацию (вне транзакции: внешний
	// HTTP-вызов не должен удерживать соединение с БД)
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	window, err := domain.ParseOperatingWindow(facility.OperatingWindow)
	if err != nil {
		uc.logger.Error("CreateBooking: facility id=%d has invalid operating window %q: %v",
			req.FacilityID, facility.OperatingWindow, err)
		return nil, fmt.Errorf("%w: %v", ErrFacilityMisconfigured, err)
	}

	// 3. Проверка соответствия сетке: запрошенное время должно в
	// точности совпадать с началом одного из слотов
	slot, ok := window.FindSlot(facility.SlotMinutes, req.StartTime)
	if !ok {
		uc.logger.Warn("CreateBooking: start=%s is not a slot of facility=%d (window=%s, slot=%d min)",
			req.StartTime, req.FacilityID, facility.OperatingWindow, facility.SlotMinutes)
		return nil, ErrNotASlot
	}

	// 4. Проверка на прошедшее время. Слот, начинающийся ровно сейчас,
	// еще не прошел. Дата бронирования приходит без часового пояса,
	// поэтому сравниваются настенные часы: текущий момент пересобирается
	// по компонентам в поясе даты
	now := uc.timeProvider.Now()
	nowWall := time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(),
		req.BookingDate.Location())
	if slot.StartTime.At(req.BookingDate).Before(nowWall) {
		uc.logger.Warn("CreateBooking: slot %s %s is in the past (now=%s)",
			req.BookingDate.Format(domain.DateFormat), slot.StartTime, now.Format("2006-01-02 15:04"))
		return nil, ErrSlotInPast
	}

	var created *domain.Booking
	var quota domain.QuotaState

	// 5. Вместимость и квота проверяются в serializable транзакции
	// вместе со вставкой: конкурентные заявки на один слот не могут
	// обе пройти по одной и той же прочитанной занятости
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.FacilityBookingsFilter{
			FacilityID:       req.FacilityID,
			StartDate:        &req.BookingDate,
			EndDate:          &req.BookingDate,
			IncludeCancelled: false,
		}

		dayBookings, err := uc.bookingRepo.GetByFacilityWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.1. Вместимость слота
		occupancy := domain.OccupancyFor(slot, dayBookings, facility.Capacity)
		if !occupancy.HasRoomFor(req.PartyCount) {
			uc.logger.Warn("CreateBooking: slot %s of facility=%d is full: booked=%d, party=%d, capacity=%d",
				slot.StartTime, req.FacilityID, occupancy.BookedCount, req.PartyCount, facility.Capacity)
			return ErrCapacityExceeded
		}

		// 5.2. Дневная квота жителя
		quota = domain.ComputeQuota(req.UserID, dayBookings)
		if !quota.Allows(slot.DurationMinutes) {
			uc.logger.Warn("CreateBooking: daily quota exceeded for user=%d: used=%d, requested=%d, remaining=%d",
				req.UserID, quota.UsedMinutes, slot.DurationMinutes, quota.RemainingMinutes)
			return ErrQuotaExceeded
		}

		// 5.3. Создаем бронирование
		booking := &domain.Booking{
			FacilityID:      req.FacilityID,
			UserID:          req.UserID,
			BookingDate:     req.BookingDate,
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
			PartyCount:      req.PartyCount,
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		quota.UsedMinutes += slot.DurationMinutes
		quota.RemainingMinutes = domain.DailyQuotaMinutes - quota.UsedMinutes
		if quota.RemainingMinutes < 0 {
			quota.RemainingMinutes = 0
		}

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict for slot %s of facility=%d", slot.StartTime, req.FacilityID)
			return nil, ErrSlotConflict
		}
		if errors.Is(txErr, ErrCapacityExceeded) || errors.Is(txErr, ErrQuotaExceeded) {
			return nil, txErr
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", txErr)
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.logger.Info("CreateBooking: created booking id=%d for user=%d, facility=%d, slot=%s",
		created.ID, req.UserID, req.FacilityID, slot.StartTime)

	// 6. Уведомляем подписчиков. Доставка best-effort: бронирование
	// уже создано, отказ уведомления не откатывает его
	uc.notifier.BookingChanged(notifier.Event{
		Type:       notifier.EventBookingCreated,
		FacilityID: req.FacilityID,
		Date:       req.BookingDate.Format(domain.DateFormat),
	})

	return &Response{Booking: created, Quota: quota}, nil
}
