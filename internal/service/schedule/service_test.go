package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/blackout"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeSchedules struct {
	items   map[domain.ProviderID]*domain.WeeklySchedule
	upserts int
	failErr error
}

func (f *fakeSchedules) Upsert(_ context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.upserts++
	f.items[s.ProviderID] = s
	return s, nil
}

func (f *fakeSchedules) GetByProviderID(_ context.Context, providerID domain.ProviderID) (*domain.WeeklySchedule, error) {
	s, ok := f.items[providerID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s, nil
}

type fakeBlackouts struct {
	items  map[domain.BlackoutID]*domain.Blackout
	nextID domain.BlackoutID
}

func (f *fakeBlackouts) Create(_ context.Context, b *domain.Blackout) (*domain.Blackout, error) {
	f.nextID++
	b.ID = f.nextID
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBlackouts) Delete(_ context.Context, id domain.BlackoutID) error {
	if _, ok := f.items[id]; !ok {
		return blackoutRepo.ErrBlackoutNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeBlackouts) ListByProviderAndDate(_ context.Context, providerID domain.ProviderID, date time.Time) ([]*domain.Blackout, error) {
	var out []*domain.Blackout
	for _, b := range f.items {
		if b.ProviderID == providerID && b.Date.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

var (
	admin  = domain.Requester{UserID: 1, Role: domain.RoleAdmin}
	client = domain.Requester{UserID: 100, Role: domain.RoleClient}
	pro    = domain.Requester{UserID: 200, Role: domain.RoleProfessional}
	monday = time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
)

func newTestService() (*Service, *fakeSchedules, *fakeBlackouts) {
	schedules := &fakeSchedules{items: make(map[domain.ProviderID]*domain.WeeklySchedule)}
	blackouts := &fakeBlackouts{items: make(map[domain.BlackoutID]*domain.Blackout)}
	return NewService(schedules, blackouts, logger.NewNop()), schedules, blackouts
}

func validSchedule() *models.SetScheduleRequest {
	return &models.SetScheduleRequest{
		ProviderID: 7,
		StartTime:  "09:00",
		EndTime:    "18:00",
		Breaks:     []models.BreakDTO{{Start: "12:00", End: "13:00"}},
	}
}

func TestService_SetSchedule(t *testing.T) {
	svc, schedules, _ := newTestService()

	resp, err := svc.SetSchedule(context.Background(), admin, validSchedule())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ProviderID)
	// пустые рабочие дни заменяются на пн-сб
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.WorkingDays)
	assert.Equal(t, 1, schedules.upserts)
}

func TestService_OnlyAdminManagesSchedule(t *testing.T) {
	ctx := context.Background()

	for _, requester := range []domain.Requester{client, pro} {
		t.Run(string(requester.Role), func(t *testing.T) {
			svc, schedules, blackouts := newTestService()
			blackouts.items[1] = &domain.Blackout{ID: 1, ProviderID: 7, Date: monday}

			_, err := svc.SetSchedule(ctx, requester, validSchedule())
			assert.ErrorIs(t, err, ErrAccessDenied)
			assert.ErrorIs(t, err, domain.ErrForbidden)

			_, err = svc.GetSchedule(ctx, requester, 7)
			assert.ErrorIs(t, err, domain.ErrForbidden)

			_, err = svc.AddBlackout(ctx, requester, &models.AddBlackoutRequest{
				ProviderID: 7, Date: monday, StartTime: "10:00", EndTime: "11:00",
			})
			assert.ErrorIs(t, err, domain.ErrForbidden)

			_, err = svc.ListBlackouts(ctx, requester, 7, monday)
			assert.ErrorIs(t, err, domain.ErrForbidden)

			err = svc.RemoveBlackout(ctx, requester, 1)
			assert.ErrorIs(t, err, domain.ErrForbidden)

			assert.Zero(t, schedules.upserts)
			assert.Len(t, blackouts.items, 1)
		})
	}
}

func TestService_SetSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.SetScheduleRequest)
		wantErr error
	}{
		{
			name:    "window reversed",
			mutate:  func(r *models.SetScheduleRequest) { r.StartTime, r.EndTime = "18:00", "09:00" },
			wantErr: domain.ErrInvalidInterval,
		},
		{
			name:    "break outside window",
			mutate:  func(r *models.SetScheduleRequest) { r.Breaks = []models.BreakDTO{{Start: "19:00", End: "20:00"}} },
			wantErr: domain.ErrInvalidInterval,
		},
		{
			name: "overlapping breaks",
			mutate: func(r *models.SetScheduleRequest) {
				r.Breaks = []models.BreakDTO{{Start: "12:00", End: "13:00"}, {Start: "12:30", End: "14:00"}}
			},
			wantErr: domain.ErrInvalidInterval,
		},
		{
			name:    "bad time format",
			mutate:  func(r *models.SetScheduleRequest) { r.StartTime = "9:00" },
			wantErr: domain.ErrInvalidTimeFormat,
		},
		{
			name:    "working day out of range",
			mutate:  func(r *models.SetScheduleRequest) { r.WorkingDays = []int{1, 7} },
			wantErr: domain.ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, schedules, _ := newTestService()
			req := validSchedule()
			tt.mutate(req)

			_, err := svc.SetSchedule(context.Background(), admin, req)

			assert.ErrorIs(t, err, ErrInvalidSchedule)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, schedules.upserts)
		})
	}
}

func TestService_SetSchedule_RepositoryFailure(t *testing.T) {
	svc, schedules, _ := newTestService()
	schedules.failErr = errors.New("connection refused")

	_, err := svc.SetSchedule(context.Background(), admin, validSchedule())

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestService_GetSchedule_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetSchedule(context.Background(), admin, 42)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Blackouts(t *testing.T) {
	ctx := context.Background()
	svc, _, blackouts := newTestService()
	reason := "training"

	created, err := svc.AddBlackout(ctx, admin, &models.AddBlackoutRequest{
		ProviderID: 7, Date: monday, StartTime: "10:00", EndTime: "11:00", Reason: &reason,
	})
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, int64(admin.UserID), *created.CreatedBy)
	assert.Equal(t, "2025-08-18", created.Date)

	list, err := svc.ListBlackouts(ctx, admin, 7, monday)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.RemoveBlackout(ctx, admin, domain.BlackoutID(created.ID)))
	assert.Empty(t, blackouts.items)
}

func TestService_AddBlackout_Invalid(t *testing.T) {
	svc, _, blackouts := newTestService()

	_, err := svc.AddBlackout(context.Background(), admin, &models.AddBlackoutRequest{
		ProviderID: 7, Date: monday, StartTime: "11:00", EndTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	assert.Empty(t, blackouts.items)
}

func TestService_RemoveBlackout_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.RemoveBlackout(context.Background(), admin, 99)

	assert.ErrorIs(t, err, ErrBlackoutNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
