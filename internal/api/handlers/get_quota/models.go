package get_quota

import (
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	getQuota "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_quota"
)

// QuotaResponse HTTP response model
type QuotaResponse struct {
	UserID           int64  `json:"userId"`
	FacilityID       int64  `json:"facilityId"`
	Date             string `json:"date"`
	QuotaMinutes     int    `json:"quotaMinutes"`
	UsedMinutes      int    `json:"usedMinutes"`
	RemainingMinutes int    `json:"remainingMinutes"`
	RemainingHours   int    `json:"remainingHours"`
	RemainingRest    int    `json:"remainingRest"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(facilityID, userID int64, dateStr string) (*getQuota.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getQuota.Request{
		UserID:     userID,
		FacilityID: facilityID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuota.Response) *QuotaResponse {
	return &QuotaResponse{
		UserID:           resp.UserID,
		FacilityID:       resp.FacilityID,
		Date:             resp.Date.Format(domain.DateFormat),
		QuotaMinutes:     resp.QuotaMinutes,
		UsedMinutes:      resp.UsedMinutes,
		RemainingMinutes: resp.RemainingMinutes,
		RemainingHours:   resp.RemainingHours,
		RemainingRest:    resp.RemainingRest,
	}
}
