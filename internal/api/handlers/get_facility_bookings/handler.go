package get_facility_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tkhmelev/RCP-FacilityService/internal/api/handlers"
	"github.com/tkhmelev/RCP-FacilityService/internal/api/middleware"
	"github.com/tkhmelev/RCP-FacilityService/internal/service/bookings"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgFacilityNotFound  = "объект не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/bookings
// Query params: residentId, status, date, from, to, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем facilityId из URL
	vars := mux.Vars(r)
	facilityIDStr := vars["facilityId"]

	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /facilities/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(
		facilityID,
		userID,
		query.Get("residentId"),
		query.Get("status"),
		query.Get("date"),
		query.Get("from"),
		query.Get("to"),
		query.Get("includeCancelled"),
	)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования объекта (сервис сам проверит права оператора)
	result, err := h.service.GetFacilityBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/bookings - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/bookings - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/bookings - Invalid filter: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /facilities/{id}/bookings - Failed to get bookings: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/bookings - Bookings retrieved successfully: facility_id=%d, count=%d",
		facilityID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
