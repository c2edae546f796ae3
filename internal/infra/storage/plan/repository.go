package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	"github.com/m04kA/MMP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/MMP-SchedulingService/pkg/psqlbuilder"
)

const planColumns = "id, mentor_id, title, duration_minutes, price, chat_window_days, is_active, created_at, updated_at"

// Repository репозиторий для работы с планами менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория планов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый план
func (r *Repository) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("plans").
		Columns(
			"mentor_id",
			"title",
			"duration_minutes",
			"price",
			"chat_window_days",
			"is_active",
		).
		Values(
			plan.MentorID,
			plan.Title,
			plan.DurationMinutes,
			plan.Price,
			plan.ChatWindowDays,
			plan.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&plan.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	plan.CreatedAt = createdAt.Time
	plan.UpdatedAt = updatedAt.Time

	return plan, nil
}

// GetByID получает план по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(planColumns).
		From("plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	plan, err := r.scanPlan(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	return plan, nil
}

// GetByMentorID получает планы ментора
// onlyActive = true возвращает только активные планы
func (r *Repository) GetByMentorID(ctx context.Context, mentorID int64, onlyActive bool) ([]*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(planColumns).
		From("plans").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("created_at ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	plans := make([]*domain.Plan, 0)
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMentorID - scan row: %v", ErrScanRow, err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMentorID - rows error: %v", ErrScanRow, err)
	}

	return plans, nil
}

// Update обновляет заголовок, цену, окно чата и признак активности плана
// Длительность плана после создания не меняется - от неё зависят
// уже сгенерированные слоты
func (r *Repository) Update(ctx context.Context, plan *domain.Plan) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("plans").
		Set("title", plan.Title).
		Set("price", plan.Price).
		Set("chat_window_days", plan.ChatWindowDays).
		Set("is_active", plan.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": plan.ID}).
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
		return ErrPlanNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPlan сканирует строку в доменную модель
func (r *Repository) scanPlan(row rowScanner) (*domain.Plan, error) {
	var plan domain.Plan
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&plan.ID,
		&plan.MentorID,
		&plan.Title,
		&plan.DurationMinutes,
		&plan.Price,
		&plan.ChatWindowDays,
		&plan.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	plan.CreatedAt = createdAt.Time
	plan.UpdatedAt = updatedAt.Time

	return &plan, nil
}
