package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/localtime"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// memoryStore хранилище записей, повторяющее частичный уникальный индекс
// (provider_id, start_at) WHERE status = 'SCHEDULED'
type memoryStore struct {
	mu      sync.Mutex
	nextID  domain.AppointmentID
	items   []*domain.Appointment
	barrier *sync.WaitGroup
	failErr error
}

func (s *memoryStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	for _, existing := range s.items {
		if existing.Status == domain.StatusScheduled && existing.ProviderID == a.ProviderID && existing.StartAt.Equal(a.StartAt) {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}
	s.nextID++
	created := *a
	created.ID = s.nextID
	s.items = append(s.items, &created)
	return &created, nil
}

func (s *memoryStore) HasOverlap(_ context.Context, providerID domain.ProviderID, startAt, endAt time.Time, exclude *domain.AppointmentID) (bool, error) {
	if s.barrier != nil {
		s.barrier.Done()
		s.barrier.Wait()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if exclude != nil && a.ID == *exclude {
			continue
		}
		if a.ProviderID == providerID && a.Status == domain.StatusScheduled && a.Overlaps(startAt, endAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) ListScheduledInRange(_ context.Context, providerID domain.ProviderID, from, to time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.ProviderID == providerID && a.Status == domain.StatusScheduled && !a.StartAt.Before(from) && a.StartAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type scheduleStub struct{ schedule *domain.WeeklySchedule }

func (s scheduleStub) GetByProviderID(_ context.Context, id domain.ProviderID) (*domain.WeeklySchedule, error) {
	if s.schedule == nil || s.schedule.ProviderID != id {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s.schedule, nil
}

type noBlackouts struct{}

func (noBlackouts) ListByProviderAndDate(context.Context, domain.ProviderID, time.Time) ([]*domain.Blackout, error) {
	return []*domain.Blackout{}, nil
}

type catalogStub struct {
	providers map[int64]*catalogservice.Provider
	services  map[int64]*catalogservice.Service
}

func (c catalogStub) GetProvider(_ context.Context, id int64) (*catalogservice.Provider, error) {
	p, ok := c.providers[id]
	if !ok {
		return nil, catalogservice.ErrProviderNotFound
	}
	return p, nil
}

func (c catalogStub) GetService(_ context.Context, id int64) (*catalogservice.Service, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return s, nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) ObserveAppointment(_ string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

const (
	providerID       = domain.ProviderID(7)
	activeService    = domain.ServiceID(1)
	longService      = domain.ServiceID(2)
	inactiveService  = domain.ServiceID(3)
	inactiveProvider = domain.ProviderID(8)
	narrowProvider   = domain.ProviderID(9)
	hugeService      = domain.ServiceID(4)
	tinyService      = domain.ServiceID(5)
)

var (
	monday = time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	// воскресенье 12:00 по UTC-03
	now = time.Date(2025, 8, 17, 15, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc      *UseCase
	store   *memoryStore
	metrics *recordingMetrics
}

func newFixture(at time.Time) *fixture {
	conv := localtime.NewConverter(-180)
	clock := localtime.FixedClock{At: at}
	store := &memoryStore{}
	schedule := &domain.WeeklySchedule{
		ProviderID: providerID,
		StartTime:  "09:00",
		EndTime:    "18:00",
		Breaks:     []domain.Break{{Start: "12:00", End: "13:00"}},
	}
	schedule.Normalize()

	avail := availability.NewService(scheduleStub{schedule: schedule}, noBlackouts{}, store, conv, clock, 60, logger.NewNop())
	catalog := catalogStub{
		providers: map[int64]*catalogservice.Provider{
			int64(providerID):       {ID: int64(providerID), Status: catalogservice.StatusActive},
			int64(inactiveProvider): {ID: int64(inactiveProvider), Status: catalogservice.StatusInactive},
			int64(narrowProvider):   {ID: int64(narrowProvider), Status: catalogservice.StatusActive, ServiceIDs: []int64{int64(longService)}},
		},
		services: map[int64]*catalogservice.Service{
			int64(activeService):   {ID: int64(activeService), Status: catalogservice.StatusActive},
			int64(longService):     {ID: int64(longService), Status: catalogservice.StatusActive, DurationMinutes: ptr.Ptr(90)},
			int64(inactiveService): {ID: int64(inactiveService), Status: catalogservice.StatusInactive},
			int64(hugeService):     {ID: int64(hugeService), Status: catalogservice.StatusActive, DurationMinutes: ptr.Ptr(600)},
			int64(tinyService):     {ID: int64(tinyService), Status: catalogservice.StatusActive, DurationMinutes: ptr.Ptr(3)},
		},
	}
	rec := &recordingMetrics{}

	return &fixture{
		uc:      NewUseCase(store, avail, catalog, conv, clock, rec, logger.NewNop()),
		store:   store,
		metrics: rec,
	}
}

func bookRequest(clientID domain.ClientID, start string) *Request {
	return &Request{
		ClientID:   clientID,
		ProviderID: providerID,
		ServiceID:  activeService,
		Date:       monday,
		StartTime:  types.TimeString(start),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(now)
	notes := "first visit"
	req := bookRequest(100, "14:00")
	req.Notes = &notes

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	// 14:00 по UTC-03 это 17:00 UTC
	assert.Equal(t, time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, notes, *resp.Notes)
	assert.Equal(t, []string{metrics.OutcomeBooked}, f.metrics.outcomes)
}

func TestExecute_SecondBookingOfSameSlotFails(t *testing.T) {
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), bookRequest(100, "14:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), bookRequest(200, "14:00"))
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Len(t, f.store.items, 1)
}

func TestExecute_ConcurrentBookingExactlyOneWins(t *testing.T) {
	f := newFixture(now)
	// обе попытки проходят предварительную проверку до первой вставки
	f.store.barrier = &sync.WaitGroup{}
	f.store.barrier.Add(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), bookRequest(domain.ClientID(100+i), "14:00"))
		}(i)
	}
	wg.Wait()

	var succeeded, justTaken int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotJustTaken):
			justTaken++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, justTaken)
	assert.Len(t, f.store.items, 1)
	assert.ElementsMatch(t, []string{metrics.OutcomeBooked, metrics.OutcomeJustTaken}, f.metrics.outcomes)
}

func TestExecute_ServiceDurationDrivesGrid(t *testing.T) {
	f := newFixture(now)
	req := bookRequest(100, "10:30")
	req.ServiceID = longService

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)

	// 14:00 не лежит на сетке в 90 минут
	req.StartTime = "14:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_OverlapWithLongerAppointment(t *testing.T) {
	f := newFixture(now)
	long := bookRequest(100, "13:00")
	long.ServiceID = longService
	_, err := f.uc.Execute(context.Background(), long)
	require.NoError(t, err)

	// 14:00 свободен в сетке часовых слотов, но пересекается с 13:00-14:30
	_, err = f.uc.Execute(context.Background(), bookRequest(200, "14:00"))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		at      time.Time
		wantErr error
	}{
		{name: "invalid client", mutate: func(r *Request) { r.ClientID = 0 }, wantErr: ErrInvalidInput},
		{name: "bad time", mutate: func(r *Request) { r.StartTime = "25:00" }, wantErr: domain.ErrInvalidTimeFormat},
		{name: "unknown provider", mutate: func(r *Request) { r.ProviderID = 99 }, wantErr: ErrProviderNotFound},
		{name: "inactive provider", mutate: func(r *Request) { r.ProviderID = inactiveProvider }, wantErr: domain.ErrEntityInactive},
		{name: "unknown service", mutate: func(r *Request) { r.ServiceID = 99 }, wantErr: domain.ErrNotFound},
		{name: "inactive service", mutate: func(r *Request) { r.ServiceID = inactiveService }, wantErr: ErrServiceInactive},
		{name: "service not offered", mutate: func(r *Request) { r.ProviderID = narrowProvider }, wantErr: ErrServiceNotOffered},
		{name: "service too long", mutate: func(r *Request) { r.ServiceID = hugeService }, wantErr: ErrServiceDurationUnsupported},
		{name: "service too short", mutate: func(r *Request) { r.ServiceID = tinyService }, wantErr: domain.ErrInvalidInput},
		{name: "off grid", mutate: func(r *Request) { r.StartTime = "14:30" }, wantErr: ErrSlotUnavailable},
		{name: "lunch break", mutate: func(r *Request) { r.StartTime = "12:00" }, wantErr: ErrSlotUnavailable},
		{name: "sunday", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, 6) }, wantErr: ErrSlotUnavailable},
		{
			name:    "already started today",
			mutate:  func(r *Request) { r.StartTime = "09:00" },
			at:      time.Date(2025, 8, 18, 12, 30, 0, 0, time.UTC),
			wantErr: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			if at.IsZero() {
				at = now
			}
			f := newFixture(at)
			req := bookRequest(100, "14:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.items)
		})
	}
}

func TestExecute_StorageFailure(t *testing.T) {
	f := newFixture(now)
	f.store.failErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), bookRequest(100, "14:00"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{metrics.OutcomeFailed}, f.metrics.outcomes)
}
