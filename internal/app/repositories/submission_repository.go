package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/dberrors"
	"github.com/campuskit/siakad/internal/pkg/helpers"
)

// SubmissionRepository handles assignment submission database operations
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UpsertSubmission stores a student's file for an assignment. Re-submitting
// replaces the file and clears any earlier score.
func (r *SubmissionRepository) UpsertSubmission(ctx context.Context, submission *models.Submission) error {
	sql, args, err := r.sb.Insert("submissions").
		Columns("assignment_id", "student_id", "file_path").
		Values(submission.AssignmentID, submission.StudentID, submission.FilePath).
		Suffix(`ON CONFLICT ON CONSTRAINT uq_submissions_assignment_student DO UPDATE SET
			file_path = EXCLUDED.file_path,
			submitted_at = CURRENT_TIMESTAMP,
			score = NULL,
			notes = NULL
			RETURNING id, submitted_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert submission query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&submission.ID, &submission.SubmittedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error upserting submission: %w", err)
	}

	return nil
}

// GetSubmissionByID retrieves a submission by ID
func (r *SubmissionRepository) GetSubmissionByID(ctx context.Context, id int64) (*models.Submission, error) {
	sql, args, err := r.sb.Select("id", "assignment_id", "student_id", "file_path", "submitted_at", "score", "notes").
		From("submissions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	submission := &models.Submission{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&submission.ID, &submission.AssignmentID, &submission.StudentID,
		&submission.FilePath, &submission.SubmittedAt, &submission.Score, &submission.Notes,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrSubmissionNotFound)
	}

	return submission, nil
}

// GetSubmission retrieves one student's submission for an assignment
func (r *SubmissionRepository) GetSubmission(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	sql, args, err := r.sb.Select("id", "assignment_id", "student_id", "file_path", "submitted_at", "score", "notes").
		From("submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID, "student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	submission := &models.Submission{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&submission.ID, &submission.AssignmentID, &submission.StudentID,
		&submission.FilePath, &submission.SubmittedAt, &submission.Score, &submission.Notes,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrSubmissionNotFound)
	}

	return submission, nil
}

// GetSubmissionsByAssignment retrieves all submissions for an assignment with
// student details preloaded.
func (r *SubmissionRepository) GetSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	sql, args, err := r.sb.Select(
		"sub.id", "sub.assignment_id", "sub.student_id", "sub.file_path", "sub.submitted_at", "sub.score", "sub.notes",
		"s.id", "s.user_id", "s.nim", "s.name", "s.program_id", "s.class_id", "s.cohort_year", "COALESCE(s.sex, '')", "COALESCE(s.address, '')").
		From("submissions sub").
		Join("students s ON s.id = sub.student_id").
		Where(squirrel.Eq{"sub.assignment_id": assignmentID}).
		OrderBy("sub.submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*models.Submission{}
	for rows.Next() {
		submission := &models.Submission{Student: &models.Student{}}
		if err := rows.Scan(
			&submission.ID, &submission.AssignmentID, &submission.StudentID,
			&submission.FilePath, &submission.SubmittedAt, &submission.Score, &submission.Notes,
			&submission.Student.ID, &submission.Student.UserID, &submission.Student.NIM, &submission.Student.Name,
			&submission.Student.ProgramID, &submission.Student.ClassID, &submission.Student.CohortYear,
			&submission.Student.Sex, &submission.Student.Address,
		); err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}

// ScoreSubmission records a lecturer's score and notes on a submission
func (r *SubmissionRepository) ScoreSubmission(ctx context.Context, id int64, score float64, notes *string) error {
	sql, args, err := r.sb.Update("submissions").
		Set("score", score).
		Set("notes", helpers.GetNullString(notes)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build score submission query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error scoring submission: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}
