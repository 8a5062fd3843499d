package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
)

// UseCase use case получения сетки слотов дня с занятостью
type UseCase struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения сетки слотов.
// Занятость пересчитывается из актуального набора бронирований при
// каждом вызове: результат - чистая проекция, ничего не кэшируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: facility=%d, date=%s",
		req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем объект
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Парсим окно работы. Ошибка конфигурации не маскируется пустой
	// сеткой: вызывающий должен отличать "закрыто" от "сломано"
	window, err := domain.ParseOperatingWindow(facility.OperatingWindow)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: facility id=%d has invalid operating window %q: %v",
			req.FacilityID, facility.OperatingWindow, err)
		return nil, fmt.Errorf("%w: %v", ErrFacilityMisconfigured, err)
	}

	// 4. Генерируем сетку слотов
	slots := window.Slots(facility.SlotMinutes)

	// 5. Получаем подтвержденные бронирования на эту дату
	filter := domain.FacilityBookingsFilter{
		FacilityID:       req.FacilityID,
		StartDate:        &req.Date,
		EndDate:          &req.Date,
		IncludeCancelled: false,
	}

	bookings, err := uc.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Считаем занятость каждого слота
	occupancies, misaligned := aggregateOccupancy(slots, bookings, facility.Capacity)

	// Бронирования, не совпавшие ни с одним слотом текущей сетки -
	// аномалия конфигурации (сетка изменилась после их создания)
	for _, b := range misaligned {
		uc.logger.Warn("GetAvailableSlots: booking id=%d (%s, %d min) does not align with current slot grid of facility=%d",
			b.ID, b.StartTime, b.DurationMinutes, req.FacilityID)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for facility=%d, date=%s",
		len(occupancies), req.FacilityID, req.Date.Format(domain.DateFormat))

	return buildResponse(facility, req.Date, occupancies), nil
}

// buildResponse собирает ответ из доменной модели занятости
func buildResponse(facility *domain.Facility, date time.Time, occupancies []domain.SlotOccupancy) *Response {
	slots := make([]Slot, 0, len(occupancies))
	for _, occ := range occupancies {
		endTime, err := occ.EndTime()
		if err != nil {
			// Недостижимо для слота из валидной сетки
			continue
		}
		slots = append(slots, Slot{
			StartTime:   occ.StartTime,
			EndTime:     endTime,
			BookedCount: occ.BookedCount,
			FreeSpots:   occ.FreeSpots(),
			Capacity:    occ.Capacity,
		})
	}

	return &Response{
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		Date:         date,
		SlotMinutes:  facility.SlotMinutes,
		Capacity:     facility.Capacity,
		Slots:        slots,
	}
}
