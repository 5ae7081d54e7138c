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

// ProgramRepository handles study program database operations
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateProgram creates a new study program
func (r *ProgramRepository) CreateProgram(ctx context.Context, program *models.Program) (int64, error) {
	sql, args, err := r.sb.Insert("programs").
		Columns("faculty_id", "name", "code", "degree").
		Values(program.FacultyID, program.Name, program.Code, program.Degree).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create program query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrProgramAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrFacultyNotFound
		}
		return 0, fmt.Errorf("error creating program: %w", err)
	}

	return id, nil
}

// GetProgramByID retrieves a study program with its faculty preloaded
func (r *ProgramRepository) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.faculty_id", "p.name", "p.code", "p.degree",
		"f.id", "f.name", "f.code").
		From("programs p").
		Join("faculties f ON f.id = p.faculty_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	program := &models.Program{Faculty: &models.Faculty{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&program.ID, &program.FacultyID, &program.Name, &program.Code, &program.Degree,
		&program.Faculty.ID, &program.Faculty.Name, &program.Faculty.Code,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrProgramNotFound)
	}

	return program, nil
}

// GetPrograms retrieves study programs, optionally restricted to one faculty
func (r *ProgramRepository) GetPrograms(ctx context.Context, facultyID int64) ([]*models.Program, error) {
	builder := r.sb.Select("id", "faculty_id", "name", "code", "degree").
		From("programs").
		OrderBy("name ASC")
	if facultyID > 0 {
		builder = builder.Where(squirrel.Eq{"faculty_id": facultyID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	for rows.Next() {
		program := &models.Program{}
		if err := rows.Scan(&program.ID, &program.FacultyID, &program.Name, &program.Code, &program.Degree); err != nil {
			return nil, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, program)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}

	return programs, nil
}

// UpdateProgram updates an existing study program
func (r *ProgramRepository) UpdateProgram(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		SetMap(map[string]interface{}{
			"faculty_id": program.FacultyID,
			"name":       program.Name,
			"code":       program.Code,
			"degree":     program.Degree,
		}).
		Where(squirrel.Eq{"id": program.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrFacultyNotFound
		}
		return fmt.Errorf("error updating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// DeleteProgram deletes a study program by ID. The RESTRICT constraints on
// classes, courses, lecturers and students surface as a referential error.
func (r *ProgramRepository) DeleteProgram(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete program query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error deleting program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}
