package get_facility_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	"github.com/tkhmelev/RCP-FacilityService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	facilityID int64,
	userID int64,
	residentIDStr string,
	statusStr string,
	dateStr string,
	fromStr string,
	toStr string,
	includeCancelledStr string,
) (*models.GetFacilityBookingsRequest, error) {
	req := &models.GetFacilityBookingsRequest{
		UserID:           userID,
		FacilityID:       facilityID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	// Парсим residentId если указан
	if residentIDStr != "" {
		residentID, err := strconv.ParseInt(residentIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResidentID = &residentID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// date задает один день, from/to - период; одновременно нельзя
	if dateStr != "" && (fromStr != "" || toStr != "") {
		return nil, fmt.Errorf("date and from/to are mutually exclusive")
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
