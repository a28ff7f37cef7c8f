package consultation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var consultationColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"price",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с типами консультаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип консультации
func (r *Repository) Create(ctx context.Context, ct *domain.ConsultationType) (*domain.ConsultationType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consultation_types").
		Columns(
			"name",
			"description",
			"duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"price",
			"status",
		).
		Values(
			ct.Name,
			ct.Description,
			ct.DurationMinutes,
			ct.BufferBeforeMinutes,
			ct.BufferAfterMinutes,
			ct.Price,
			ct.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ct.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	ct.CreatedAt = createdAt.Time
	ct.UpdatedAt = updatedAt.Time

	return ct, nil
}

// GetByID получает тип консультации по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ConsultationType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(consultationColumns...).
		From("consultation_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	ct, err := scanConsultation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation type: %v", ErrScanRow, err)
	}

	return ct, nil
}

// List получает типы консультаций.
// При onlyActive=true возвращаются только активные - это выборка для
// публичного каталога услуг.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.ConsultationType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns...).
		From("consultation_types").
		OrderBy("name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ConsultationActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	consultations := make([]*domain.ConsultationType, 0)
	for rows.Next() {
		ct, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		consultations = append(consultations, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return consultations, nil
}

// Update обновляет тип консультации
func (r *Repository) Update(ctx context.Context, ct *domain.ConsultationType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultation_types").
		Set("name", ct.Name).
		Set("description", ct.Description).
		Set("duration_minutes", ct.DurationMinutes).
		Set("buffer_before_minutes", ct.BufferBeforeMinutes).
		Set("buffer_after_minutes", ct.BufferAfterMinutes).
		Set("price", ct.Price).
		Set("status", ct.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ct.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConsultationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*domain.ConsultationType, error) {
	var ct domain.ConsultationType
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&ct.ID,
		&ct.Name,
		&ct.Description,
		&ct.DurationMinutes,
		&ct.BufferBeforeMinutes,
		&ct.BufferAfterMinutes,
		&ct.Price,
		&ct.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ct.CreatedAt = createdAt.Time
	ct.UpdatedAt = updatedAt.Time

	return &ct, nil
}
