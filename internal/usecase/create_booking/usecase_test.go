package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	bookingstorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/booking"
	clientstorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/client"
	servicestorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/servicecatalog"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/ptr"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/txmanager"
)

var (
	testTeamID    = uuid.MustParse("7a1d2e3f-0000-4000-8000-111111111111")
	testServiceID = uuid.MustParse("7a1d2e3f-0000-4000-8000-222222222222")
	testClientID  = uuid.MustParse("7a1d2e3f-0000-4000-8000-333333333333")

	testNow = time.Date(2026, time.January, 26, 6, 0, 0, 0, time.UTC)
)

type fakeBookingRepo struct {
	stored    []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = uuid.New()
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	f.stored = append(f.stored, &created)
	return &created, nil
}

// GetByTeamWithFilter имитирует оверлап-запрос хранилища: возвращает занимающие
// бронирования, чей буферизованный интервал пересекает окно фильтра
func (f *fakeBookingRepo) GetByTeamWithFilter(_ context.Context, filter domain.TeamBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.stored {
		if b.TeamID != filter.TeamID {
			continue
		}
		if filter.OnlyOccupying && !b.IsOccupying() {
			continue
		}
		if filter.IntersectStart != nil && filter.IntersectEnd != nil {
			if !domain.Overlaps(b.StartTime, b.BufferedEnd(), *filter.IntersectStart, *filter.IntersectEnd) {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetActiveByID(_ context.Context, _, _ uuid.UUID) (*domain.Service, error) {
	return f.service, f.err
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedInterval
}

func (f *fakeBlockedRepo) ListIntersecting(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*domain.BlockedInterval, error) {
	var out []*domain.BlockedInterval
	for _, b := range f.blocks {
		if domain.Overlaps(b.StartTime, b.EndTime, from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	byID    map[uuid.UUID]*domain.Client
	byEmail map[string]*domain.Client

	createErrs []error // очередь ошибок для последовательных Create
	created    []*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		byID:    make(map[uuid.UUID]*domain.Client),
		byEmail: make(map[string]*domain.Client),
	}
}

func (f *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, clientstorage.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) GetByTeamAndEmail(_ context.Context, _ uuid.UUID, email string) (*domain.Client, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, clientstorage.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	created := *c
	created.ID = uuid.New()
	f.created = append(f.created, &created)
	f.byID[created.ID] = &created
	f.byEmail[created.Email] = &created
	return &created, nil
}

type fakeTxManager struct {
	err   error
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
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
		Price:           120,
		BufferMinutes:   15,
		LeadTimeHours:   2,
		MaxAdvanceDays:  30,
		IsActive:        true,
	}
}

func testClient() *domain.Client {
	return &domain.Client{
		ID:         testClientID,
		TeamID:     testTeamID,
		Name:       "Anna Aalto",
		Email:      "anna@example.com",
		Phone:      "+1 555 0100",
		PortalCode: "A1B2C3D4",
	}
}

type deps struct {
	bookings *fakeBookingRepo
	services *fakeServiceRepo
	blocked  *fakeBlockedRepo
	clients  *fakeClientRepo
	tx       *fakeTxManager
}

func newTestUseCase(d *deps) *UseCase {
	return NewUseCase(d.bookings, d.services, d.blocked, d.clients, d.tx, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
}

func defaultDeps() *deps {
	clients := newFakeClientRepo()
	c := testClient()
	clients.byID[c.ID] = c
	clients.byEmail[c.Email] = c

	return &deps{
		bookings: &fakeBookingRepo{},
		services: &fakeServiceRepo{service: testService()},
		blocked:  &fakeBlockedRepo{},
		clients:  clients,
		tx:       &fakeTxManager{},
	}
}

func portalRequest() *Request {
	clientID := testClientID
	return &Request{
		TeamID:    testTeamID,
		ServiceID: testServiceID,
		ClientID:  &clientID,
		StartTime: time.Date(2026, time.January, 26, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.January, 26, 11, 0, 0, 0, time.UTC),
		Selections: []ServiceSelection{
			{Name: "Deep Clean", Quantity: 1},
		},
	}
}

func guestRequest() *Request {
	req := portalRequest()
	req.ClientID = nil
	req.Guest = &GuestInfo{
		Name:        "Boris Novak",
		Email:       "boris@example.com",
		Phone:       "+1 555 0101",
		BillingCity: ptr.Ptr("Toronto"),
	}
	return req
}

func TestExecute_PortalFlowSuccess(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), portalRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, testClientID, resp.ClientID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Deep Clean - Anna Aalto", resp.Title)
	assert.Equal(t, "Deep Clean", resp.ServiceName)
	assert.Equal(t, 120.0, resp.ServicePrice)
	assert.Equal(t, 1, d.tx.calls)

	require.Len(t, d.bookings.stored, 1)
	assert.Equal(t, 15, d.bookings.stored[0].BufferMinutes)
}

func TestExecute_TitleForMultiServiceSelection(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	req := portalRequest()
	req.EndTime = req.StartTime.Add(3 * time.Hour)
	req.Selections = []ServiceSelection{
		{Name: "Deep Clean", Quantity: 2},
		{Name: "Window Wash", Quantity: 1},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Deep Clean (x2), Window Wash - Anna Aalto", resp.Title)
}

func TestExecute_LeadTimeViolation(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	req := portalRequest()
	// now 06:00, lead 2h: старт в 07:00 нарушает окно
	req.StartTime = time.Date(2026, time.January, 26, 7, 0, 0, 0, time.UTC)
	req.EndTime = req.StartTime.Add(time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLeadTimeViolation)
	assert.Zero(t, d.tx.calls)
}

func TestExecute_HorizonViolation(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	req := portalRequest()
	req.StartTime = testNow.AddDate(0, 0, 45)
	req.EndTime = req.StartTime.Add(time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHorizonViolation)
}

func TestExecute_ConflictWithOccupyingBooking(t *testing.T) {
	d := defaultDeps()
	d.bookings.stored = []*domain.Booking{{
		ID:            uuid.New(),
		TeamID:        testTeamID,
		StartTime:     time.Date(2026, time.January, 26, 10, 30, 0, 0, time.UTC),
		EndTime:       time.Date(2026, time.January, 26, 11, 30, 0, 0, time.UTC),
		BufferMinutes: 0,
		Status:        domain.StatusConfirmed,
	}}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	require.Len(t, d.bookings.stored, 1) // вставки не было
}

func TestExecute_CancelledBookingDoesNotConflict(t *testing.T) {
	d := defaultDeps()
	d.bookings.stored = []*domain.Booking{{
		ID:        uuid.New(),
		TeamID:    testTeamID,
		StartTime: time.Date(2026, time.January, 26, 10, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.January, 26, 11, 30, 0, 0, time.UTC),
		Status:    domain.StatusCancelled,
	}}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.NoError(t, err)
}

func TestExecute_ConflictWithBufferOfNeighbour(t *testing.T) {
	d := defaultDeps()
	// Бронирование 09:00-09:50 с буфером 15 занимает до 10:05 и задевает старт 10:00
	d.bookings.stored = []*domain.Booking{{
		ID:            uuid.New(),
		TeamID:        testTeamID,
		StartTime:     time.Date(2026, time.January, 26, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, time.January, 26, 9, 50, 0, 0, time.UTC),
		BufferMinutes: 15,
		Status:        domain.StatusPending,
	}}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ConflictWithBlockedInterval(t *testing.T) {
	d := defaultDeps()
	d.blocked.blocks = []*domain.BlockedInterval{{
		TeamID:    testTeamID,
		StartTime: time.Date(2026, time.January, 26, 10, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.January, 26, 12, 0, 0, 0, time.UTC),
	}}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_StorageConflictMapped(t *testing.T) {
	d := defaultDeps()
	// Exclusion constraint сработал на вставке
	d.bookings.createErr = bookingstorage.ErrSlotConflict
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_SerializationFailureMappedToConflict(t *testing.T) {
	d := defaultDeps()
	d.tx.err = fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure,
		errors.New("pq: could not serialize access due to concurrent update"))
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_DoubleBookingRace(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	require.NoError(t, err)

	// Повтор того же интервала видит первую вставку и конфликтует
	_, err = uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, d.bookings.stored, 1)
}

func TestExecute_GuestFlowCreatesClient(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), guestRequest())
	require.NoError(t, err)

	require.Len(t, d.clients.created, 1)
	created := d.clients.created[0]
	assert.Equal(t, resp.ClientID, created.ID)
	assert.Equal(t, "Boris Novak", created.Name)
	require.NotNil(t, created.BillingCity)
	assert.Equal(t, "Toronto", *created.BillingCity)
	assert.True(t, created.PortalEnabled)

	require.Len(t, created.PortalCode, domain.PortalCodeLength)
	for _, r := range created.PortalCode {
		assert.Contains(t, domain.PortalCodeAlphabet, string(r))
	}
}

func TestExecute_GuestFlowReusesExistingClientByEmail(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	req := guestRequest()
	req.Guest.Email = "anna@example.com" // уже есть в директории команды

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, testClientID, resp.ClientID)
	assert.Empty(t, d.clients.created)
	assert.Equal(t, "Deep Clean - Anna Aalto", resp.Title)
}

func TestExecute_GuestFlowRetriesPortalCodeCollision(t *testing.T) {
	d := defaultDeps()
	d.clients.createErrs = []error{clientstorage.ErrPortalCodeTaken}
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	require.Len(t, d.clients.created, 1)
	assert.Equal(t, resp.ClientID, d.clients.created[0].ID)
}

func TestExecute_GuestFlowPortalCodeExhausted(t *testing.T) {
	d := defaultDeps()
	for i := 0; i < maxPortalCodeAttempts; i++ {
		d.clients.createErrs = append(d.clients.createErrs, clientstorage.ErrPortalCodeTaken)
	}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), guestRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, d.clients.created)
}

func TestExecute_GuestFlowMissingContactInfo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GuestInfo)
	}{
		{"empty name", func(g *GuestInfo) { g.Name = "  " }},
		{"empty email", func(g *GuestInfo) { g.Email = "" }},
		{"empty phone", func(g *GuestInfo) { g.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := defaultDeps()
			uc := newTestUseCase(d)

			req := guestRequest()
			tt.mutate(req.Guest)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrMissingClientInfo)
		})
	}
}

func TestExecute_ClientNotFound(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	unknown := uuid.New()
	req := portalRequest()
	req.ClientID = &unknown

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_ClientFromAnotherTeamRejected(t *testing.T) {
	d := defaultDeps()

	foreign := testClient()
	foreign.ID = uuid.New()
	foreign.TeamID = uuid.New()
	d.clients.byID[foreign.ID] = foreign

	uc := newTestUseCase(d)

	req := portalRequest()
	req.ClientID = &foreign.ID

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrClientNotFound)
	assert.Empty(t, d.bookings.stored)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	d := defaultDeps()
	d.services = &fakeServiceRepo{err: servicestorage.ErrServiceNotFound}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), portalRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing team", func(r *Request) { r.TeamID = uuid.Nil }},
		{"missing service", func(r *Request) { r.ServiceID = uuid.Nil }},
		{"no client and no guest", func(r *Request) { r.ClientID = nil }},
		{"end equals start", func(r *Request) { r.EndTime = r.StartTime }},
		{"end before start", func(r *Request) { r.EndTime = r.StartTime.Add(-time.Hour) }},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := defaultDeps()
			uc := newTestUseCase(d)

			req := portalRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
