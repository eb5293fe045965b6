package appointment

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func appointmentRow(id int64, start time.Time, status string) *sqlmock.Rows {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).AddRow(
		id, int64(10), int64(20), int64(30),
		start, start.Add(time.Hour), status,
		"bring documents", nil, nil, nil,
		now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC)
	created := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(int64(10), int64(20), int64(30), start, start.Add(time.Hour), "SCHEDULED", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), created, created))

	a, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID:   10,
		ProviderID: 20,
		ServiceID:  30,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     domain.StatusScheduled,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentID(7), a.ID)
	assert.Equal(t, created, a.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_appointments_provider_start_scheduled"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID: 10, ProviderID: 20, ServiceID: 30,
		StartAt: start, EndAt: start.Add(time.Hour), Status: domain.StatusScheduled,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OverlapViolation(t *testing.T) {
	repo, mock := newMock(t)
	// 10:00-11:00 против уже записанных 09:00-10:30: начала разные, пересекаются интервалы
	start := time.Date(2025, 8, 18, 13, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "ex_appointments_provider_overlap_scheduled"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID: 11, ProviderID: 20, ServiceID: 30,
		StartAt: start, EndAt: start.Add(time.Hour), Status: domain.StatusScheduled,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OtherError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO appointments").WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Appointment{Status: domain.StatusScheduled})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id = ").
		WithArgs(int64(7)).
		WillReturnRows(appointmentRow(7, start, "SCHEDULED"))

	a, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, a.Status)
	assert.Equal(t, domain.ClientID(10), a.ClientID)
	require.NotNil(t, a.Notes)
	assert.Equal(t, "bring documents", *a.Notes)
	assert.Nil(t, a.CancelReason)
	assert.Equal(t, start, a.StartAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC)
	providerID := domain.ProviderID(20)
	status := domain.StatusScheduled

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM appointments WHERE").
		WithArgs(int64(20), "SCHEDULED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE (.+) ORDER BY start_at DESC, id ASC LIMIT 10 OFFSET 10").
		WithArgs(int64(20), "SCHEDULED").
		WillReturnRows(appointmentRow(1, start, "SCHEDULED"))

	items, total, err := repo.List(context.Background(),
		domain.AppointmentFilter{ProviderID: &providerID, Status: &status, SortDesc: true},
		domain.Pagination{Page: 2, Limit: 10},
	)

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	assert.Len(t, items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListScheduledInRange(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2025, 8, 18, 3, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE (.+) ORDER BY start_at ASC").
		WithArgs(int64(20), "SCHEDULED", from, to).
		WillReturnRows(appointmentRow(1, from.Add(14*time.Hour), "SCHEDULED").
			AddRow(int64(2), int64(11), int64(20), int64(30),
				from.Add(15*time.Hour), from.Add(16*time.Hour), "SCHEDULED",
				nil, nil, nil, nil, from, from))

	items, err := repo.ListScheduledInRange(context.Background(), 20, from, to)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[1].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasOverlap(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	exclude := domain.AppointmentID(5)

	mock.ExpectQuery("SELECT EXISTS \\( SELECT 1 FROM appointments WHERE (.+) id <> ").
		WithArgs(int64(20), "SCHEDULED", end, start, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasOverlap(context.Background(), 20, start, end, &exclude)

	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)
	reason := "client asked"
	a := &domain.Appointment{ID: 7, Status: domain.StatusCanceled, CancelReason: &reason, CanceledAt: &now}

	mock.ExpectQuery("UPDATE appointments SET status = (.+) WHERE id = (.+) RETURNING updated_at").
		WithArgs("CANCELED", reason, now, nil, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	require.NoError(t, repo.UpdateStatus(context.Background(), a))
	assert.Equal(t, now, a.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("UPDATE appointments").WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.UpdateStatus(context.Background(), &domain.Appointment{ID: 404, Status: domain.StatusCompleted})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_Reschedule_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 19, 17, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE appointments SET service_id").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Reschedule(context.Background(), &domain.Appointment{
		ID: 7, ProviderID: 20, ServiceID: 31, StartAt: start, EndAt: start.Add(time.Hour),
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_Reschedule_OverlapViolation(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 8, 19, 17, 30, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE appointments SET service_id").
		WillReturnError(&pq.Error{Code: "23P01"})

	err := repo.Reschedule(context.Background(), &domain.Appointment{
		ID: 7, ProviderID: 20, ServiceID: 31, StartAt: start, EndAt: start.Add(90 * time.Minute),
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
}
