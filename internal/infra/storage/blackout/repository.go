package blackout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "schedule_blackouts"

var columns = []string{
	"id",
	"provider_id",
	"date",
	"start_time",
	"end_time",
	"reason",
	"created_by",
	"created_at",
}

// Repository репозиторий разовых блокировок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, b *domain.Blackout) (*domain.Blackout, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns("provider_id", "date", "start_time", "end_time", "reason", "created_by").
		Values(b.ProviderID, b.Date.Format(domain.DateFormat), b.StartTime, b.EndTime, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// Delete удаляет блокировку. Несуществующий id возвращает ErrBlackoutNotFound
func (r *Repository) Delete(ctx context.Context, id domain.BlackoutID) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}

// ListByProviderAndDate возвращает блокировки провайдера на дату, по времени начала
func (r *Repository) ListByProviderAndDate(ctx context.Context, providerID domain.ProviderID, date time.Time) ([]*domain.Blackout, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"provider_id": providerID,
			"date":        date.Format(domain.DateFormat),
		}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProviderAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

func scanBlackouts(rows *sql.Rows) ([]*domain.Blackout, error) {
	result := make([]*domain.Blackout, 0)
	for rows.Next() {
		var (
			b         domain.Blackout
			reason    sql.NullString
			createdBy sql.NullInt64
		)
		if err := rows.Scan(
			&b.ID,
			&b.ProviderID,
			&b.Date,
			&b.StartTime,
			&b.EndTime,
			&reason,
			&createdBy,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan blackout: %v", ErrScanRow, err)
		}
		if reason.Valid {
			b.Reason = &reason.String
		}
		if createdBy.Valid {
			uid := domain.UserID(createdBy.Int64)
			b.CreatedBy = &uid
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate blackouts: %v", ErrScanRow, err)
	}
	return result, nil
}
