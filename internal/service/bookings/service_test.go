package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	bookingRepo "github.com/tkhmelev/RCP-FacilityService/internal/infra/storage/booking"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
	"github.com/tkhmelev/RCP-FacilityService/internal/service/bookings/models"
	"github.com/tkhmelev/RCP-FacilityService/pkg/ptr"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	cancelled []int64
}

func newFakeRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.FacilityID != filter.FacilityID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.CancellationReason = reason
	now := time.Now()
	b.CancelledAt = &now
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeFacilityClient struct {
	facility *domain.Facility
	err      error
}

func (f *fakeFacilityClient) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.facility, nil
}

type fakeNotifier struct {
	events []notifier.Event
}

func (f *fakeNotifier) BookingChanged(ev notifier.Event) {
	f.events = append(f.events, ev)
}

func testFacility() *domain.Facility {
	return &domain.Facility{
		ID:              42,
		Name:            "Бассейн",
		OperatingWindow: "09:00-21:00",
		SlotMinutes:     60,
		Capacity:        10,
		OperatorIDs:     []int64{500},
	}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		FacilityID:      42,
		UserID:          7,
		BookingDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		PartyCount:      2,
		Status:          domain.StatusConfirmed,
	}
}

func newTestService(repo *fakeBookingRepo, n *fakeNotifier) *Service {
	return NewService(repo, &fakeFacilityClient{facility: testFacility()}, n, fakeLogger{})
}

func TestGetByID_OwnerSeesOwnBooking(t *testing.T) {
	svc := newTestService(newFakeRepo(confirmedBooking()), &fakeNotifier{})

	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByID_OperatorSeesAnyBooking(t *testing.T) {
	svc := newTestService(newFakeRepo(confirmedBooking()), &fakeNotifier{})

	resp, err := svc.GetByID(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_StrangerIsDenied(t *testing.T) {
	svc := newTestService(newFakeRepo(confirmedBooking()), &fakeNotifier{})

	_, err := svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	_, err := svc.GetByID(context.Background(), 77, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_OwnerCancelsAsResident(t *testing.T) {
	repo := newFakeRepo(confirmedBooking())
	n := &fakeNotifier{}
	svc := newTestService(repo, n)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             7,
		CancellationReason: ptr.Ptr("планы изменились"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByResident, repo.byID[1].Status)
	require.NotNil(t, repo.byID[1].CancellationReason)
	assert.Equal(t, "планы изменились", *repo.byID[1].CancellationReason)

	// Подписчики уведомлены об освобождении слота
	require.Len(t, n.events, 1)
	assert.Equal(t, notifier.EventBookingCancelled, n.events[0].Type)
	assert.Equal(t, int64(42), n.events[0].FacilityID)
}

func TestCancel_OperatorCancelsAsOperator(t *testing.T) {
	repo := newFakeRepo(confirmedBooking())
	svc := newTestService(repo, &fakeNotifier{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 500})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByOperator, repo.byID[1].Status)
}

func TestCancel_StrangerIsDenied(t *testing.T) {
	repo := newFakeRepo(confirmedBooking())
	svc := newTestService(repo, &fakeNotifier{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.byID[1].Status)
}

func TestCancel_AlreadyCancelledIsNoOp(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelledByOperator
	repo := newFakeRepo(b)
	n := &fakeNotifier{}
	svc := newTestService(repo, n)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7})
	require.NoError(t, err)

	// Исходный статус отмены сохранен, событие не рассылалось
	assert.Equal(t, domain.StatusCancelledByOperator, repo.byID[1].Status)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, n.events)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	err := svc.Cancel(context.Background(), 77, &models.CancelBookingRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	cancelled := confirmedBooking()
	cancelled.ID = 2
	cancelled.Status = domain.StatusCancelledByResident

	repo := newFakeRepo(confirmedBooking(), cancelled)
	svc := newTestService(repo, &fakeNotifier{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "confirmed", resp.Bookings[0].Status)
}

func TestGetUserBookings_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFacilityBookings_RequiresOperator(t *testing.T) {
	repo := newFakeRepo(confirmedBooking())
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:     7, // житель, не оператор
		FacilityID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:     500,
		FacilityID: 42,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetFacilityBookings_FacilityNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFacilityClient{err: facilityClient.ErrFacilityNotFound},
		&fakeNotifier{}, fakeLogger{})

	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:     500,
		FacilityID: 42,
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
