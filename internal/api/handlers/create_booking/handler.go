package create_booking

import (
	"errors"
	"net/http"

	"github.com/tkhmelev/RCP-FacilityService/internal/api/handlers"
	"github.com/tkhmelev/RCP-FacilityService/internal/api/middleware"
	createBooking "github.com/tkhmelev/RCP-FacilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgFacilityNotFound      = "объект не найден"
	msgFacilityMisconfigured = "расписание объекта настроено некорректно"
	msgNotASlot              = "выбранное время не совпадает со слотом объекта"
	msgSlotInPast            = "выбранный слот уже прошел"
	msgCapacityExceeded      = "в выбранном слоте недостаточно свободных мест"
	msgQuotaExceeded         = "превышен дневной лимит бронирования"
	msgSlotConflict          = "слот только что заняли, обновите сетку и попробуйте снова"
	msgInvalidInput          = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - No user in context")
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrFacilityMisconfigured):
			h.logger.Error("POST /bookings - Facility misconfigured: facility_id=%d, error=%v", req.FacilityID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgFacilityMisconfigured)

		case errors.Is(err, createBooking.ErrNotASlot):
			h.logger.Warn("POST /bookings - Not a slot: user_id=%d, facility_id=%d, start=%s",
				userID, req.FacilityID, req.StartTime)
			handlers.RespondBadRequest(w, msgNotASlot)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: user_id=%d, facility_id=%d, date=%s, start=%s",
				userID, req.FacilityID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: user_id=%d, facility_id=%d, start=%s",
				userID, req.FacilityID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgQuotaExceeded)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, facility_id=%d, start=%s",
				userID, req.FacilityID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, facility_id=%d",
		result.Booking.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
