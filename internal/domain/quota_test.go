package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuota(t *testing.T) {
	tests := []struct {
		name          string
		bookings      []*Booking
		wantUsed      int
		wantRemaining int
	}{
		{
			name:          "no bookings",
			bookings:      nil,
			wantUsed:      0,
			wantRemaining: DailyQuotaMinutes,
		},
		{
			name: "confirmed bookings consume budget",
			bookings: []*Booking{
				{UserID: 7, DurationMinutes: 60, Status: StatusConfirmed},
				{UserID: 7, DurationMinutes: 90, Status: StatusConfirmed},
			},
			wantUsed:      150,
			wantRemaining: 30,
		},
		{
			name: "cancelled bookings return their minutes",
			bookings: []*Booking{
				{UserID: 7, DurationMinutes: 60, Status: StatusConfirmed},
				{UserID: 7, DurationMinutes: 60, Status: StatusCancelledByResident},
				{UserID: 7, DurationMinutes: 60, Status: StatusCancelledByOperator},
			},
			wantUsed:      60,
			wantRemaining: 120,
		},
		{
			name: "other residents do not consume budget",
			bookings: []*Booking{
				{UserID: 7, DurationMinutes: 60, Status: StatusConfirmed},
				{UserID: 8, DurationMinutes: 120, Status: StatusConfirmed},
			},
			wantUsed:      60,
			wantRemaining: 120,
		},
		{
			name: "remaining never negative",
			bookings: []*Booking{
				{UserID: 7, DurationMinutes: 120, Status: StatusConfirmed},
				{UserID: 7, DurationMinutes: 120, Status: StatusConfirmed},
			},
			wantUsed:      240,
			wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQuota(7, tt.bookings)
			assert.Equal(t, tt.wantUsed, got.UsedMinutes)
			assert.Equal(t, tt.wantRemaining, got.RemainingMinutes)
		})
	}
}

func TestQuotaState_Allows(t *testing.T) {
	q := QuotaState{UsedMinutes: 150, RemainingMinutes: 30}

	assert.True(t, q.Allows(30))
	assert.False(t, q.Allows(31))
	assert.False(t, q.Allows(60))
	assert.True(t, q.Allows(0))
}

func TestQuotaState_RemainingBreakdown(t *testing.T) {
	q := QuotaState{RemainingMinutes: 150}
	hours, minutes := q.RemainingBreakdown()

	assert.Equal(t, 2, hours)
	assert.Equal(t, 30, minutes)
}
