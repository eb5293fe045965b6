package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const (
	table = "appointments"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	uniqueViolation = "23505"
	// exclusionViolation код ошибки PostgreSQL при нарушении ограничения EXCLUDE (пересечение интервалов)
	exclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"start_at",
	"end_at",
	"status",
	"notes",
	"cancel_reason",
	"canceled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись. Конкурентная вставка того же (provider_id, start_at)
// в статусе SCHEDULED завершается ErrSlotTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"provider_id",
			"service_id",
			"start_at",
			"end_at",
			"status",
			"notes",
		).
		Values(
			a.ClientID,
			a.ProviderID,
			a.ServiceID,
			a.StartAt.UTC(),
			a.EndAt.UTC(),
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: provider=%d start_at=%s", ErrSlotTaken, a.ProviderID, a.StartAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id domain.AppointmentID) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// List возвращает страницу записей по фильтру и общее количество подходящих записей
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter, page domain.Pagination) ([]*domain.Appointment, int, error) {
	where := filterConditions(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute count: %v", ErrExecQuery, err)
	}

	order := "start_at ASC"
	if filter.SortDesc {
		order = "start_at DESC"
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy(order, "id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListScheduledInRange возвращает записи провайдера в статусе SCHEDULED,
// начало которых попадает в [from, to)
func (r *Repository) ListScheduledInRange(ctx context.Context, providerID domain.ProviderID, from, to time.Time) ([]*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID, "status": domain.StatusScheduled}).
		Where(squirrel.GtOrEq{"start_at": from.UTC()}).
		Where(squirrel.Lt{"start_at": to.UTC()}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// HasOverlap проверяет, есть ли у провайдера запись SCHEDULED, пересекающая [startAt, endAt).
// Запись exclude не учитывается (используется при переносе)
func (r *Repository) HasOverlap(ctx context.Context, providerID domain.ProviderID, startAt, endAt time.Time, exclude *domain.AppointmentID) (bool, error) {
	builder := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"provider_id": providerID, "status": domain.StatusScheduled}).
		Where(squirrel.Lt{"start_at": endAt.UTC()}).
		Where(squirrel.Gt{"end_at": startAt.UTC()})
	if exclude != nil {
		builder = builder.Where(squirrel.NotEq{"id": *exclude})
	}

	query, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasOverlap - execute query: %v", ErrExecQuery, err)
	}

	return exists, nil
}

// UpdateStatus сохраняет статус и поля аудита, выставленные переходом
func (r *Repository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", a.Status).
		Set("cancel_reason", a.CancelReason).
		Set("canceled_at", a.CanceledAt).
		Set("completed_at", a.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Reschedule переносит запись на новое время (и, возможно, услугу) с тем же id
func (r *Repository) Reschedule(ctx context.Context, a *domain.Appointment) error {
	query, args, err := psqlbuilder.Update(table).
		Set("service_id", a.ServiceID).
		Set("start_at", a.StartAt.UTC()).
		Set("end_at", a.EndAt.UTC()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		if isSlotConflict(err) {
			return fmt.Errorf("%w: provider=%d start_at=%s", ErrSlotTaken, a.ProviderID, a.StartAt.Format(time.RFC3339))
		}
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func filterConditions(filter domain.AppointmentFilter) squirrel.And {
	where := squirrel.And{}
	if filter.ProviderID != nil {
		where = append(where, squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.ClientID != nil {
		where = append(where, squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		where = append(where, squirrel.GtOrEq{"start_at": filter.From.UTC()})
	}
	if filter.To != nil {
		where = append(where, squirrel.Lt{"start_at": filter.To.UTC()})
	}
	return where
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a            domain.Appointment
		notes        sql.NullString
		cancelReason sql.NullString
		canceledAt   sql.NullTime
		completedAt  sql.NullTime
	)
	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ProviderID,
		&a.ServiceID,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&notes,
		&cancelReason,
		&canceledAt,
		&completedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		a.Notes = &notes.String
	}
	if cancelReason.Valid {
		a.CancelReason = &cancelReason.String
	}
	if canceledAt.Valid {
		a.CanceledAt = &canceledAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	a.StartAt = a.StartAt.UTC()
	a.EndAt = a.EndAt.UTC()

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate appointments: %v", ErrScanRow, err)
	}
	return result, nil
}

func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation || pqErr.Code == exclusionViolation
}
