package get_available_slots

import (
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	getAvailableSlots "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	FacilityID   int64           `json:"facilityId"`
	FacilityName string          `json:"facilityName"`
	SlotMinutes  int             `json:"slotMinutes"`
	Capacity     int             `json:"capacity"`
	Slots        []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота с занятостью
type AvailableSlot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	BookedCount int    `json:"bookedCount"`
	FreeSpots   int    `json:"freeSpots"`
	Capacity    int    `json:"capacity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			BookedCount: slot.BookedCount,
			FreeSpots:   slot.FreeSpots,
			Capacity:    slot.Capacity,
		}
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		FacilityID:   resp.FacilityID,
		FacilityName: resp.FacilityName,
		SlotMinutes:  resp.SlotMinutes,
		Capacity:     resp.Capacity,
		Slots:        slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(facilityID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		FacilityID: facilityID,
		Date:       date,
	}, nil
}
