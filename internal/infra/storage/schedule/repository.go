package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "weekly_schedules"

// Repository репозиторий недельных расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или полностью заменяет расписание провайдера.
// Перерывы и рабочие дни перезаписываются целиком
func (r *Repository) Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	breaks, err := json.Marshal(s.Breaks)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal breaks: %v", ErrEncodeBreaks, err)
	}

	days := make([]int64, 0, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		days = append(days, int64(d))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("provider_id", "start_time", "end_time", "breaks", "working_days").
		Values(s.ProviderID, s.StartTime, s.EndTime, string(breaks), pq.Array(days)).
		Suffix(`ON CONFLICT (provider_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			breaks = EXCLUDED.breaks,
			working_days = EXCLUDED.working_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByProviderID получает расписание провайдера
func (r *Repository) GetByProviderID(ctx context.Context, providerID domain.ProviderID) (*domain.WeeklySchedule, error) {
	query, args, err := psqlbuilder.Select(
		"provider_id",
		"start_time",
		"end_time",
		"breaks",
		"working_days",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s      domain.WeeklySchedule
		breaks []byte
		days   pq.Int64Array
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ProviderID,
		&s.StartTime,
		&s.EndTime,
		&breaks,
		&days,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan schedule: %v", ErrScanRow, err)
	}

	if len(breaks) > 0 {
		if err := json.Unmarshal(breaks, &s.Breaks); err != nil {
			return nil, fmt.Errorf("%w: GetByProviderID - decode breaks: %v", ErrScanRow, err)
		}
	}
	s.WorkingDays = make([]int, 0, len(days))
	for _, d := range days {
		s.WorkingDays = append(s.WorkingDays, int(d))
	}
	s.Normalize()
	// дальше расписание разбирается через MustMinutes, битая строка не должна дойти до расчета слотов
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - stored schedule of provider id=%d is invalid: %v", ErrScanRow, providerID, err)
	}

	return &s, nil
}
