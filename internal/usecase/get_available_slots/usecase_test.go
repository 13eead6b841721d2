package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	availabilitystorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/availability"
	servicestorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/servicecatalog"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/types"
)

// 2026-01-26 - понедельник
var (
	testTeamID    = uuid.MustParse("4f8b6c1e-0a2d-4a79-9c39-111111111111")
	testServiceID = uuid.MustParse("4f8b6c1e-0a2d-4a79-9c39-222222222222")
	testDate      = time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC)
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByTeamWithFilter(_ context.Context, _ domain.TeamBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetActiveByID(_ context.Context, _, _ uuid.UUID) (*domain.Service, error) {
	return f.service, f.err
}

type fakeAvailabilityRepo struct {
	avail *domain.WeeklyAvailability
	err   error
}

func (f *fakeAvailabilityRepo) GetByTeamAndWeekday(_ context.Context, _ uuid.UUID, _ int) (*domain.WeeklyAvailability, error) {
	return f.avail, f.err
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedInterval
	err    error
}

func (f *fakeBlockedRepo) ListIntersecting(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*domain.BlockedInterval, error) {
	return f.blocks, f.err
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testService() *domain.Service {
	return &domain.Service{
		ID:              testServiceID,
		TeamID:          testTeamID,
		Name:            "Deep Clean",
		DurationMinutes: 60,
		BufferMinutes:   15,
		LeadTimeHours:   2,
		MaxAdvanceDays:  30,
		IsActive:        true,
	}
}

func testAvailability() *domain.WeeklyAvailability {
	return &domain.WeeklyAvailability{
		TeamID:      testTeamID,
		DayOfWeek:   1, // понедельник
		IsAvailable: true,
		StartTime:   types.TimeString("09:00"),
		EndTime:     types.TimeString("17:00"),
	}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	services *fakeServiceRepo,
	avail *fakeAvailabilityRepo,
	blocked *fakeBlockedRepo,
	now time.Time,
) *UseCase {
	return NewUseCase(bookings, services, avail, blocked, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func defaultRequest() *Request {
	return &Request{
		TeamID:           testTeamID,
		ServiceID:        testServiceID,
		Date:             testDate,
		UTCOffsetMinutes: 0,
	}
}

func slotStarts(slots []domain.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.UTC().Format("15:04")
	}
	return out
}

func TestExecute_EmptyDay(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	// Окно 09:00-17:00, услуга 60 минут, шаг 30: старты 09:00..16:00
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, "09:00", slotStarts(resp.Slots)[0])
	assert.Equal(t, "16:00", slotStarts(resp.Slots)[14])

	// Слоты хронологически упорядочены и длятся ровно длительность услуги
	for i, slot := range resp.Slots {
		assert.Equal(t, 60*time.Minute, slot.Duration())
		if i > 0 {
			assert.True(t, slot.StartTime.After(resp.Slots[i-1].StartTime))
		}
	}
}

func TestExecute_BufferedBookingExcludesNeighbours(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	booked := &domain.Booking{
		TeamID:        testTeamID,
		StartTime:     time.Date(2026, time.January, 26, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, time.January, 26, 11, 0, 0, 0, time.UTC),
		BufferMinutes: 15,
		Status:        domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booked}},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	// Бронирование занимает [10:00, 11:15) с буфером; кандидаты с буфером
	// [start, start+75m) пересекаются для стартов 09:00..11:00.
	// Первый свободный старт - 11:30
	starts := slotStarts(resp.Slots)
	require.NotEmpty(t, starts)
	assert.Equal(t, "11:30", starts[0])
	assert.NotContains(t, starts, "09:00")
	assert.NotContains(t, starts, "11:00")
}

func TestExecute_TouchingIntervalsDoNotConflict(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	svc := testService()
	svc.BufferMinutes = 0

	booked := &domain.Booking{
		TeamID:    testTeamID,
		StartTime: time.Date(2026, time.January, 26, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.January, 26, 11, 0, 0, 0, time.UTC),
		Status:    domain.StatusPending,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booked}},
		&fakeServiceRepo{service: svc},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	// Без буферов слот, заканчивающийся ровно в 10:00, и слот, начинающийся
	// ровно в 11:00, не конфликтуют
	starts := slotStarts(resp.Slots)
	assert.Contains(t, starts, "09:00")
	assert.Contains(t, starts, "11:00")
	assert.NotContains(t, starts, "09:30")
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:30")
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	cancelled := &domain.Booking{
		TeamID:        testTeamID,
		StartTime:     time.Date(2026, time.January, 26, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, time.January, 26, 11, 0, 0, 0, time.UTC),
		BufferMinutes: 15,
		Status:        domain.StatusCancelled,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{cancelled}},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 15)
}

func TestExecute_BlockedIntervalExcluded(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	svc := testService()
	svc.BufferMinutes = 0

	block := &domain.BlockedInterval{
		TeamID:    testTeamID,
		StartTime: time.Date(2026, time.January, 26, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.January, 26, 13, 0, 0, 0, time.UTC),
	}

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: svc},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{blocks: []*domain.BlockedInterval{block}},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, "11:30")
	assert.NotContains(t, starts, "12:00")
	assert.NotContains(t, starts, "12:30")
	assert.Contains(t, starts, "11:00")
	assert.Contains(t, starts, "13:00")
}

func TestExecute_LeadTimeBoundaryExcluded(t *testing.T) {
	// now 07:00 + lead 2h = 09:00: кандидат ровно на границе не предлагается
	now := time.Date(2026, time.January, 26, 7, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	require.NotEmpty(t, starts)
	assert.Equal(t, "09:30", starts[0])
	assert.NotContains(t, starts, "09:00")
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	now := time.Date(2026, time.January, 27, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BeyondHorizonReturnsEmpty(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	req := defaultRequest()
	req.Date = testDate.AddDate(0, 0, 45) // за горизонтом 30 дней

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	avail := testAvailability()
	avail.IsAvailable = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: avail},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoAvailabilityRecordReturnsEmpty(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{err: availabilitystorage.ErrAvailabilityNotFound},
		&fakeBlockedRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClientFrameKeepsLateSlots(t *testing.T) {
	// Для сервера (UTC) дата уже вчерашняя, но в фрейме клиента UTC-12
	// запрошенный день ещё идёт: поздние слоты должны вернуться
	now := time.Date(2026, time.January, 27, 1, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	req := defaultRequest()
	req.UTCOffsetMinutes = -720

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// minBookable = 27.01 03:00 UTC = 26.01 15:00 локальных: остаются 15:30 и 16:00
	loc := domain.ClientLocation(-720)
	starts := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		starts[i] = s.StartTime.In(loc).Format("15:04")
	}
	assert.Equal(t, []string{"15:30", "16:00"}, starts)
}

func TestExecute_Deterministic(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	booked := &domain.Booking{
		TeamID:        testTeamID,
		StartTime:     time.Date(2026, time.January, 26, 13, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, time.January, 26, 14, 0, 0, 0, time.UTC),
		BufferMinutes: 15,
		Status:        domain.StatusPending,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booked}},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	first, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{err: servicestorage.ErrServiceNotFound},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeAvailabilityRepo{avail: testAvailability()},
		&fakeBlockedRepo{},
		now,
	)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing team", func(r *Request) { r.TeamID = uuid.Nil }},
		{"missing service", func(r *Request) { r.ServiceID = uuid.Nil }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"offset too low", func(r *Request) { r.UTCOffsetMinutes = -721 }},
		{"offset too high", func(r *Request) { r.UTCOffsetMinutes = 841 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := defaultRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestFilterForTotalDuration(t *testing.T) {
	loc := time.UTC
	lateSlot := domain.TimeSlot{
		StartTime: time.Date(2026, time.January, 26, 22, 30, 0, 0, loc),
		EndTime:   time.Date(2026, time.January, 26, 23, 30, 0, 0, loc),
	}
	earlySlot := domain.TimeSlot{
		StartTime: time.Date(2026, time.January, 26, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2026, time.January, 26, 11, 0, 0, 0, loc),
	}

	// Суммарно 120 минут: поздний слот перелез бы через локальную полночь
	filtered := FilterForTotalDuration([]domain.TimeSlot{earlySlot, lateSlot}, 120, loc)
	assert.Equal(t, []domain.TimeSlot{earlySlot}, filtered)

	// 60 минут помещаются до 23:59:59
	filtered = FilterForTotalDuration([]domain.TimeSlot{earlySlot, lateSlot}, 60, loc)
	assert.Len(t, filtered, 2)
}
