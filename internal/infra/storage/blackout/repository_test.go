package blackout

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	reason := "dentist"
	admin := domain.UserID(1)
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO schedule_blackouts").
		WithArgs(int64(5), "2025-08-18", "14:00", "15:30", "dentist", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	b, err := repo.Create(context.Background(), &domain.Blackout{
		ProviderID: 5,
		Date:       time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		StartTime:  "14:00",
		EndTime:    "15:30",
		Reason:     &reason,
		CreatedBy:  &admin,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BlackoutID(3), b.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM schedule_blackouts WHERE id = ").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM schedule_blackouts WHERE id = ").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrBlackoutNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByProviderAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	date := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM schedule_blackouts WHERE (.+) ORDER BY start_time ASC, id ASC").
		WithArgs("2025-08-18", int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(5), date, "10:00", "11:00", nil, nil, now).
			AddRow(int64(2), int64(5), date, "14:00", "15:00", "meeting", int64(1), now))

	items, err := repo.ListByProviderAndDate(context.Background(), 5, date)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Reason)
	require.NotNil(t, items[1].Reason)
	assert.Equal(t, "meeting", *items[1].Reason)
	require.NotNil(t, items[1].CreatedBy)
	assert.Equal(t, domain.UserID(1), *items[1].CreatedBy)
}
