package get_quota

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tkhmelev/RCP-FacilityService/internal/api/handlers"
	"github.com/tkhmelev/RCP-FacilityService/internal/api/middleware"
	getQuota "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_quota"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFacilityNotFound  = "объект не найден"
)

type Handler struct {
	useCase GetQuotaUseCase
	logger  Logger
}

func NewHandler(useCase GetQuotaUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/quota
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем facilityId из URL
	vars := mux.Vars(r)
	facilityIDStr := vars["facilityId"]

	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/quota - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /facilities/{id}/quota - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/quota - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(facilityID, userID, dateStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/quota - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getQuota.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/quota - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getQuota.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/quota - Invalid input: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /facilities/{id}/quota - Failed to get quota: facility_id=%d, user_id=%d, error=%v",
				facilityID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /facilities/{id}/quota - Quota retrieved successfully: facility_id=%d, user_id=%d, remaining=%d",
		facilityID, userID, result.RemainingMinutes)
	handlers.RespondJSON(w, http.StatusOK, response)
}
