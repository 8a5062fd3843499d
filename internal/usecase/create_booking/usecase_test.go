package create_booking

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhmelev/RCP-FacilityService/internal/domain"
	facilityClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
	"github.com/tkhmelev/RCP-FacilityService/pkg/txmanager"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

// fakeBookingRepo хранит бронирования в памяти
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
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

// fakeTxManager сериализует конкурентные транзакции мьютексом,
// воспроизводя эффект serializable-изоляции для фейкового репозитория
type fakeTxManager struct {
	mu  sync.Mutex
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (f *fakeNotifier) BookingChanged(ev notifier.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func testDate() time.Time {
	return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func testFacility() *domain.Facility {
	return &domain.Facility{
		ID:              42,
		Name:            "Теннисный корт",
		OperatingWindow: "09:00-21:00",
		SlotMinutes:     60,
		Capacity:        10,
	}
}

func newTestUseCase(repo *fakeBookingRepo, facility *domain.Facility, n *fakeNotifier) *UseCase {
	uc := NewUseCase(repo, &fakeFacilityClient{facility: facility}, &fakeTxManager{}, n, fakeLogger{})
	// now = 08:00 того же дня, все слоты еще впереди
	return uc.WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)})
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		FacilityID:  42,
		BookingDate: testDate(),
		StartTime:   "10:00",
		PartyCount:  2,
	}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	n := &fakeNotifier{}
	uc := newTestUseCase(repo, testFacility(), n)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, int64(7), b.UserID)
	assert.Equal(t, "10:00", b.StartTime.String())
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, 2, b.PartyCount)
	assert.NotZero(t, b.ID)

	// Квота в ответе учитывает только что созданное бронирование
	assert.Equal(t, 60, resp.Quota.UsedMinutes)
	assert.Equal(t, domain.DailyQuotaMinutes-60, resp.Quota.RemainingMinutes)

	// Подписчики уведомлены
	require.Equal(t, 1, n.count())
	assert.Equal(t, notifier.EventBookingCreated, n.events[0].Type)
	assert.Equal(t, int64(42), n.events[0].FacilityID)
	assert.Equal(t, "2026-03-15", n.events[0].Date)
}

func TestExecute_RejectsTimeOffTheGrid(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testFacility(), &fakeNotifier{})

	req := validRequest()
	req.StartTime = "10:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotASlot)
}

func TestExecute_RejectsPastSlot(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{facility: testFacility()}, &fakeTxManager{}, &fakeNotifier{}, fakeLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)})

	req := validRequest()
	req.StartTime = "10:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_SlotStartingExactlyNowIsAdmitted(t *testing.T) {
	// Граница: начало слота совпадает с текущим моментом - слот еще не прошел
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{facility: testFacility()}, &fakeTxManager{}, &fakeNotifier{}, fakeLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
}

func TestExecute_PastCheckComparesWallClocks(t *testing.T) {
	// Дата бронирования парсится handler'ом без часового пояса (UTC),
	// а часы сервера могут идти в другом поясе. Проверка прошедшего
	// времени обязана сравнивать настенные часы, а не моменты
	msk := time.FixedZone("MSK", 3*60*60)

	t.Run("прошедший по настенным часам слот отклоняется", func(t *testing.T) {
		// 12:00 по серверным часам (UTC+3): слот 10:00 прошел два часа назад,
		// хотя как момент UTC-полночь+10ч еще впереди
		uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{facility: testFacility()}, &fakeTxManager{}, &fakeNotifier{}, fakeLogger{}).
			WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 12, 0, 0, 0, msk)})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotInPast)
	})

	t.Run("будущий по настенным часам слот принимается", func(t *testing.T) {
		// 09:30 по серверным часам (UTC+3): как момент это 06:30 UTC,
		// но решает настенное время - слот 10:00 еще впереди
		repo := &fakeBookingRepo{}
		uc := NewUseCase(repo, &fakeFacilityClient{facility: testFacility()}, &fakeTxManager{}, &fakeNotifier{}, fakeLogger{}).
			WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 9, 30, 0, 0, msk)})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	})
}

func TestExecute_PastWinsOverCapacity(t *testing.T) {
	// Слот одновременно прошедший и заполненный: причина отказа - прошедшее время
	repo := &fakeBookingRepo{}
	for i := 0; i < 10; i++ {
		repo.bookings = append(repo.bookings, &domain.Booking{
			FacilityID: 42, UserID: int64(100 + i), BookingDate: testDate(),
			StartTime: "10:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
		})
	}

	uc := NewUseCase(repo, &fakeFacilityClient{facility: testFacility()}, &fakeTxManager{}, &fakeNotifier{}, fakeLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_CapacityAdmission(t *testing.T) {
	// В слоте занято 9 мест из 10
	seed := func() *fakeBookingRepo {
		repo := &fakeBookingRepo{}
		repo.bookings = append(repo.bookings, &domain.Booking{
			FacilityID: 42, UserID: 100, BookingDate: testDate(),
			StartTime: "10:00", DurationMinutes: 60, PartyCount: 9, Status: domain.StatusConfirmed,
		})
		return repo
	}

	t.Run("party of two does not fit", func(t *testing.T) {
		uc := newTestUseCase(seed(), testFacility(), &fakeNotifier{})

		req := validRequest()
		req.PartyCount = 2

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("party of one fills the slot exactly", func(t *testing.T) {
		uc := newTestUseCase(seed(), testFacility(), &fakeNotifier{})

		req := validRequest()
		req.PartyCount = 1

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	})
}

func TestExecute_QuotaAdmission(t *testing.T) {
	// У жителя уже занято 120 минут из 180
	seed := func() *fakeBookingRepo {
		repo := &fakeBookingRepo{}
		repo.bookings = append(repo.bookings,
			&domain.Booking{
				FacilityID: 42, UserID: 7, BookingDate: testDate(),
				StartTime: "09:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
			},
			&domain.Booking{
				FacilityID: 42, UserID: 7, BookingDate: testDate(),
				StartTime: "11:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
			},
		)
		return repo
	}

	t.Run("one more hour fits exactly", func(t *testing.T) {
		uc := newTestUseCase(seed(), testFacility(), &fakeNotifier{})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, 180, resp.Quota.UsedMinutes)
		assert.Equal(t, 0, resp.Quota.RemainingMinutes)
	})

	t.Run("beyond the daily budget is rejected", func(t *testing.T) {
		repo := seed()
		// Третий час занимает остаток квоты
		repo.bookings = append(repo.bookings, &domain.Booking{
			FacilityID: 42, UserID: 7, BookingDate: testDate(),
			StartTime: "13:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
		})

		uc := newTestUseCase(repo, testFacility(), &fakeNotifier{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("cancelled bookings return quota minutes", func(t *testing.T) {
		repo := seed()
		repo.bookings[0].Status = domain.StatusCancelledByResident

		uc := newTestUseCase(repo, testFacility(), &fakeNotifier{})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, 120, resp.Quota.UsedMinutes)
	})
}

func TestExecute_CapacityCheckedBeforeQuota(t *testing.T) {
	// Слот заполнен И квота исчерпана: отказ по вместимости
	repo := &fakeBookingRepo{}
	repo.bookings = append(repo.bookings,
		&domain.Booking{
			FacilityID: 42, UserID: 100, BookingDate: testDate(),
			StartTime: "10:00", DurationMinutes: 60, PartyCount: 10, Status: domain.StatusConfirmed,
		},
		&domain.Booking{
			FacilityID: 42, UserID: 7, BookingDate: testDate(),
			StartTime: "09:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
		},
		&domain.Booking{
			FacilityID: 42, UserID: 7, BookingDate: testDate(),
			StartTime: "11:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
		},
		&domain.Booking{
			FacilityID: 42, UserID: 7, BookingDate: testDate(),
			StartTime: "13:00", DurationMinutes: 60, PartyCount: 1, Status: domain.StatusConfirmed,
		},
	)

	uc := newTestUseCase(repo, testFacility(), &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_SerializationFailureIsSlotConflict(t *testing.T) {
	txMgr := &fakeTxManager{err: txmanager.ErrSerializationFailure}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{facility: testFacility()}, txMgr, &fakeNotifier{}, fakeLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFacilityClient{err: facilityClient.ErrFacilityNotFound},
		&fakeTxManager{}, &fakeNotifier{}, fakeLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_RejectedBookingDoesNotNotify(t *testing.T) {
	n := &fakeNotifier{}
	uc := newTestUseCase(&fakeBookingRepo{}, testFacility(), n)

	req := validRequest()
	req.StartTime = "08:30" // вне сетки

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 0, n.count())
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testFacility(), &fakeNotifier{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "zero facility", mutate: func(r *Request) { r.FacilityID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.BookingDate = time.Time{} }},
		{name: "malformed time", mutate: func(r *Request) { r.StartTime = "ten" }},
		{name: "zero party", mutate: func(r *Request) { r.PartyCount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentSubmissionsNeverOverbook(t *testing.T) {
	repo := &fakeBookingRepo{}
	n := &fakeNotifier{}
	uc := newTestUseCase(repo, testFacility(), n)

	rng := rand.New(rand.NewSource(1))
	const workers = 40

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		userID := int64(1000 + i)
		partyCount := 1 + rng.Intn(3)

		go func() {
			defer wg.Done()
			req := validRequest()
			req.UserID = userID
			req.PartyCount = partyCount
			_, _ = uc.Execute(context.Background(), req)
		}()
	}
	wg.Wait()

	// Сумма размеров подтвержденных групп в слоте не превышает вместимость
	total := 0
	for _, b := range repo.bookings {
		if b.Status == domain.StatusConfirmed && b.StartTime == "10:00" {
			total += b.PartyCount
		}
	}
	assert.LessOrEqual(t, total, testFacility().Capacity)
	assert.Greater(t, total, 0)
}
