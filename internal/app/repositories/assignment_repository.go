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

// AssignmentRepository handles assignment database operations
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAssignment creates a new assignment
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error) {
	sql, args, err := r.sb.Insert("assignments").
		Columns("course_id", "lecturer_id", "title", "description", "deadline").
		Values(assignment.CourseID, assignment.LecturerID, assignment.Title, assignment.Description, assignment.Deadline).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create assignment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &assignment.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrReferentialIntegrity
		}
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}

	return id, nil
}

// GetAssignmentByID retrieves an assignment with its course preloaded
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.course_id", "a.lecturer_id", "a.title", "a.description", "a.deadline", "a.created_at",
		"c.id", "c.program_id", "c.code", "c.name", "c.credit_hours").
		From("assignments a").
		Join("courses c ON c.id = a.course_id").
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignment query: %w", err)
	}

	assignment := &models.Assignment{Course: &models.Course{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&assignment.ID, &assignment.CourseID, &assignment.LecturerID,
		&assignment.Title, &assignment.Description, &assignment.Deadline, &assignment.CreatedAt,
		&assignment.Course.ID, &assignment.Course.ProgramID, &assignment.Course.Code,
		&assignment.Course.Name, &assignment.Course.CreditHours,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrAssignmentNotFound)
	}

	return assignment, nil
}

// GetAssignments retrieves assignments, optionally for one course, restricted
// by the caller's scope. A nil scope means unrestricted.
func (r *AssignmentRepository) GetAssignments(ctx context.Context, courseID int64, scope squirrel.Sqlizer) ([]*models.Assignment, error) {
	builder := r.sb.Select(
		"assignments.id", "assignments.course_id", "assignments.lecturer_id",
		"assignments.title", "assignments.description", "assignments.deadline", "assignments.created_at",
		"c.code", "c.name").
		From("assignments").
		Join("courses c ON c.id = assignments.course_id").
		OrderBy("assignments.deadline ASC")

	if courseID > 0 {
		builder = builder.Where(squirrel.Eq{"assignments.course_id": courseID})
	}
	if scope != nil {
		builder = builder.Where(scope)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*models.Assignment{}
	for rows.Next() {
		assignment := &models.Assignment{Course: &models.Course{}}
		if err := rows.Scan(
			&assignment.ID, &assignment.CourseID, &assignment.LecturerID,
			&assignment.Title, &assignment.Description, &assignment.Deadline, &assignment.CreatedAt,
			&assignment.Course.Code, &assignment.Course.Name,
		); err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return assignments, nil
}

// UpdateAssignment updates an existing assignment
func (r *AssignmentRepository) UpdateAssignment(ctx context.Context, assignment *models.Assignment) error {
	sql, args, err := r.sb.Update("assignments").
		SetMap(map[string]interface{}{
			"title":       assignment.Title,
			"description": assignment.Description,
			"deadline":    assignment.Deadline,
		}).
		Where(squirrel.Eq{"id": assignment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update assignment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// DeleteAssignment deletes an assignment and its submissions
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("assignments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete assignment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}
