package get_quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
)

// UseCase use case получения дневной квоты жителя
type UseCase struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
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
		logger:         logger,
	}
}

// Execute выполняет use case получения квоты. Квота пересчитывается
// из актуальных подтвержденных бронирований: отмена возвращает минуты
// автоматически, отдельного учета возвратов нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuota: user=%d, facility=%d, date=%s",
		req.UserID, req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetQuota: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование объекта
	if _, err := uc.facilityClient.GetFacility(ctx, req.FacilityID); err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("GetQuota: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetQuota: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Получаем подтвержденные бронирования жителя на эту дату
	filter := domain.FacilityBookingsFilter{
		FacilityID:       req.FacilityID,
		UserID:           &req.UserID,
		StartDate:        &req.Date,
		EndDate:          &req.Date,
		IncludeCancelled: false,
	}

	bookings, err := uc.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetQuota: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Считаем квоту
	quota := domain.ComputeQuota(req.UserID, bookings)
	hours, rest := quota.RemainingBreakdown()

	uc.logger.Info("GetQuota: user=%d, facility=%d, date=%s: used=%d, remaining=%d",
		req.UserID, req.FacilityID, req.Date.Format(domain.DateFormat),
		quota.UsedMinutes, quota.RemainingMinutes)

	return &Response{
		UserID:           req.UserID,
		FacilityID:       req.FacilityID,
		Date:             req.Date,
		QuotaMinutes:     domain.DailyQuotaMinutes,
		UsedMinutes:      quota.UsedMinutes,
		RemainingMinutes: quota.RemainingMinutes,
		RemainingHours:   hours,
		RemainingRest:    rest,
	}, nil
}
