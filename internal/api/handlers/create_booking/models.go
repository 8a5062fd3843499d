package create_booking

import (
	"time"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	createBooking "github.com/tkhmelev/RCP-FacilityService/internal/usecase/create_booking"
	"github.com/tkhmelev/RCP-FacilityService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FacilityID  int64   `json:"facilityId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	PartyCount  int     `json:"partyCount"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	FacilityID      int64   `json:"facilityId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	PartyCount      int     `json:"partyCount"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	QuotaUsedMinutes      int `json:"quotaUsedMinutes"`
	QuotaRemainingMinutes int `json:"quotaRemainingMinutes"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		FacilityID:  r.FacilityID,
		BookingDate: bookingDate,
		StartTime:   startTime,
		PartyCount:  r.PartyCount,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking

	out := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		FacilityID:      b.FacilityID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		PartyCount:      b.PartyCount,
		Status:          string(b.Status),
		Notes:           b.Notes,

		QuotaUsedMinutes:      resp.Quota.UsedMinutes,
		QuotaRemainingMinutes: resp.Quota.RemainingMinutes,

		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}

	if endTime, err := b.EndTime(); err == nil {
		out.EndTime = endTime.String()
	}

	return out
}
