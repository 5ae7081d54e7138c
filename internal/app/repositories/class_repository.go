package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/dberrors"
)

// ClassRepository handles class (rombongan belajar) database operations
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateClass creates a new class
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) (int64, error) {
	sql, args, err := r.sb.Insert("classes").
		Columns("program_id", "name", "cohort_year").
		Values(class.ProgramID, class.Name, class.CohortYear).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrProgramNotFound
		}
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	return id, nil
}

// GetClassByID retrieves a class by ID
func (r *ClassRepository) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.sb.Select("id", "program_id", "name", "cohort_year").
		From("classes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class := &models.Class{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.ProgramID, &class.Name, &class.CohortYear)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrClassNotFound)
	}

	return class, nil
}

// GetClasses retrieves classes, optionally restricted to one program
func (r *ClassRepository) GetClasses(ctx context.Context, programID int64) ([]*models.Class, error) {
	builder := r.sb.Select("id", "program_id", "name", "cohort_year").
		From("classes").
		OrderBy("cohort_year DESC", "name ASC")
	if programID > 0 {
		builder = builder.Where(squirrel.Eq{"program_id": programID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class := &models.Class{}
		if err := rows.Scan(&class.ID, &class.ProgramID, &class.Name, &class.CohortYear); err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, nil
}

// UpdateClass updates an existing class
func (r *ClassRepository) UpdateClass(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Update("classes").
		SetMap(map[string]interface{}{
			"program_id":  class.ProgramID,
			"name":        class.Name,
			"cohort_year": class.CohortYear,
		}).
		Where(squirrel.Eq{"id": class.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// DeleteClass deletes a class by ID. Schedules reference classes with
// RESTRICT, so a scheduled class cannot be removed.
func (r *ClassRepository) DeleteClass(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
