package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tkhmelev/RCP-FacilityService/internal/api/handlers"
	getAvailableSlots "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidFacilityID     = "некорректный ID объекта"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFacilityNotFound      = "объект не найден"
	msgFacilityMisconfigured = "расписание объекта настроено некорректно"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем facilityId из URL
	facilityIDStr := vars["facilityId"]
	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(facilityID, dateStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/slots - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getAvailableSlots.ErrFacilityMisconfigured):
			h.logger.Error("GET /facilities/{id}/slots - Facility misconfigured: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgFacilityMisconfigured)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/slots - Invalid input: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /facilities/{id}/slots - Failed to get slots: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /facilities/{id}/slots - Slots retrieved successfully: facility_id=%d, date=%s, slots_count=%d",
		facilityID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
