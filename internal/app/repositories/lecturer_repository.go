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

// LecturerRepository handles lecturer database operations
type LecturerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLecturerRepository creates a new LecturerRepository
func NewLecturerRepository(db *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateLecturer inserts a lecturer row, joining the caller's transaction so
// the account and the lecturer record commit together.
func (r *LecturerRepository) CreateLecturer(ctx context.Context, runner DBTX, lecturer *models.Lecturer) (int64, error) {
	sql, args, err := r.sb.Insert("lecturers").
		Columns("user_id", "nidn", "name", "program_id").
		Values(lecturer.UserID, lecturer.NIDN, lecturer.Name, lecturer.ProgramID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create lecturer query: %w", err)
	}

	var id int64
	if err := runner.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueConstraintError(err, "lecturers_nidn_key") {
			return 0, apperrors.ErrNIDNAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrProgramNotFound
		}
		return 0, fmt.Errorf("error creating lecturer: %w", err)
	}

	return id, nil
}

// GetLecturerByID retrieves a lecturer by ID
func (r *LecturerRepository) GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	return r.getLecturer(ctx, squirrel.Eq{"id": id})
}

// GetLecturerByUserID retrieves the lecturer record linked to an account
func (r *LecturerRepository) GetLecturerByUserID(ctx context.Context, userID int64) (*models.Lecturer, error) {
	return r.getLecturer(ctx, squirrel.Eq{"user_id": userID})
}

func (r *LecturerRepository) getLecturer(ctx context.Context, where squirrel.Eq) (*models.Lecturer, error) {
	sql, args, err := r.sb.Select("id", "user_id", "nidn", "name", "program_id").
		From("lecturers").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lecturer query: %w", err)
	}

	lecturer := &models.Lecturer{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&lecturer.ID, &lecturer.UserID, &lecturer.NIDN, &lecturer.Name, &lecturer.ProgramID,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrLecturerNotFound)
	}

	return lecturer, nil
}

// GetLecturers retrieves a paginated list of lecturers with the total count
func (r *LecturerRepository) GetLecturers(ctx context.Context, programID int64, offset, limit int) ([]*models.Lecturer, int64, error) {
	countBuilder := r.sb.Select("COUNT(*)").From("lecturers")
	listBuilder := r.sb.Select("id", "user_id", "nidn", "name", "program_id").
		From("lecturers").
		OrderBy("name ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	if programID > 0 {
		countBuilder = countBuilder.Where(squirrel.Eq{"program_id": programID})
		listBuilder = listBuilder.Where(squirrel.Eq{"program_id": programID})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count lecturers query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting lecturers: %w", err)
	}

	sql, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get lecturers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying lecturers: %w", err)
	}
	defer rows.Close()

	lecturers := []*models.Lecturer{}
	for rows.Next() {
		lecturer := &models.Lecturer{}
		if err := rows.Scan(&lecturer.ID, &lecturer.UserID, &lecturer.NIDN, &lecturer.Name, &lecturer.ProgramID); err != nil {
			return nil, 0, fmt.Errorf("error scanning lecturer row: %w", err)
		}
		lecturers = append(lecturers, lecturer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating lecturer rows: %w", err)
	}

	return lecturers, total, nil
}

// UpdateLecturer updates an existing lecturer record
func (r *LecturerRepository) UpdateLecturer(ctx context.Context, lecturer *models.Lecturer) error {
	sql, args, err := r.sb.Update("lecturers").
		SetMap(map[string]interface{}{
			"nidn":       lecturer.NIDN,
			"name":       lecturer.Name,
			"program_id": lecturer.ProgramID,
		}).
		Where(squirrel.Eq{"id": lecturer.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update lecturer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrNIDNAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error updating lecturer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLecturerNotFound
	}

	return nil
}
