package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository serves the aggregate counters shown on dashboards
type StatsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CountRows returns the row count of a table. Callers pass fixed table names
// only, never user input.
func (r *StatsRepository) CountRows(ctx context.Context, table string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query for %s: %w", table, err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return count, nil
}

// CountScheduledCourses returns how many distinct courses a lecturer teaches
func (r *StatsRepository) CountScheduledCourses(ctx context.Context, lecturerID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(DISTINCT course_id)").
		From("schedules").
		Where(squirrel.Eq{"lecturer_id": lecturerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build scheduled courses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting scheduled courses: %w", err)
	}
	return count, nil
}

// CountTaughtStudents returns how many distinct students sit in the classes a
// lecturer teaches
func (r *StatsRepository) CountTaughtStudents(ctx context.Context, lecturerID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(DISTINCT s.id)").
		From("students s").
		Join("schedules sc ON sc.class_id = s.class_id").
		Where(squirrel.Eq{"sc.lecturer_id": lecturerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build taught students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting taught students: %w", err)
	}
	return count, nil
}

// CountPendingReviews returns how many unscored submissions await a lecturer
func (r *StatsRepository) CountPendingReviews(ctx context.Context, lecturerID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("submissions sub").
		Join("assignments a ON a.id = sub.assignment_id").
		Where(squirrel.Eq{"a.lecturer_id": lecturerID}).
		Where("sub.score IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build pending reviews query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting pending reviews: %w", err)
	}
	return count, nil
}
