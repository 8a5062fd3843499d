package get_quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	lastFilter domain.FacilityBookingsFilter
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, nil
}

type fakeFacilityClient struct {
	err error
}

func (f *fakeFacilityClient) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Facility{ID: facilityID, Name: "Сауна", OperatingWindow: "10:00-22:00", SlotMinutes: 30, Capacity: 4}, nil
}

func testDate() time.Time {
	return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestExecute_ComputesQuotaFromConfirmedBookings(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{UserID: 7, DurationMinutes: 60, Status: domain.StatusConfirmed},
			{UserID: 7, DurationMinutes: 30, Status: domain.StatusConfirmed},
		},
	}
	uc := NewUseCase(repo, &fakeFacilityClient{}, fakeLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, FacilityID: 42, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, domain.DailyQuotaMinutes, resp.QuotaMinutes)
	assert.Equal(t, 90, resp.UsedMinutes)
	assert.Equal(t, 90, resp.RemainingMinutes)
	assert.Equal(t, 1, resp.RemainingHours)
	assert.Equal(t, 30, resp.RemainingRest)

	// Репозиторий запрошен по жителю и одной дате, без отмененных
	require.NotNil(t, repo.lastFilter.UserID)
	assert.Equal(t, int64(7), *repo.lastFilter.UserID)
	assert.False(t, repo.lastFilter.IncludeCancelled)
	require.NotNil(t, repo.lastFilter.StartDate)
	assert.Equal(t, testDate(), *repo.lastFilter.StartDate)
}

func TestExecute_FreshDayHasFullBudget(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{}, fakeLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, FacilityID: 42, Date: testDate()})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.UsedMinutes)
	assert.Equal(t, domain.DailyQuotaMinutes, resp.RemainingMinutes)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{err: facilityClient.ErrFacilityNotFound}, fakeLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, FacilityID: 42, Date: testDate()})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{}, fakeLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, FacilityID: 42, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, FacilityID: -1, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, FacilityID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
