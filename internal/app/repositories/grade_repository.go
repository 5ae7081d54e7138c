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

// GradeFilter narrows grade listings.
type GradeFilter struct {
	StudentID    int64
	CourseID     int64
	Semester     int
	AcademicYear string
}

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UpsertGrade writes one grade row per enrollment. Writing the same
// (student, course, semester, academic year) again replaces the scores.
func (r *GradeRepository) UpsertGrade(ctx context.Context, grade *models.Grade) error {
	sql, args, err := r.sb.Insert("grades").
		Columns("student_id", "course_id", "semester", "academic_year",
			"assignment_score", "midterm_score", "final_exam_score", "final_score", "letter_grade").
		Values(grade.StudentID, grade.CourseID, grade.Semester, grade.AcademicYear,
			grade.Assignment, grade.Midterm, grade.FinalExam, grade.FinalScore, grade.LetterGrade).
		Suffix(`ON CONFLICT ON CONSTRAINT uq_grades_enrollment DO UPDATE SET
			assignment_score = EXCLUDED.assignment_score,
			midterm_score = EXCLUDED.midterm_score,
			final_exam_score = EXCLUDED.final_exam_score,
			final_score = EXCLUDED.final_score,
			letter_grade = EXCLUDED.letter_grade
			RETURNING id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert grade query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&grade.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error upserting grade: %w", err)
	}

	return nil
}

// GetGradeByID retrieves a grade row by ID
func (r *GradeRepository) GetGradeByID(ctx context.Context, id int64) (*models.Grade, error) {
	sql, args, err := r.sb.Select("id", "student_id", "course_id", "semester", "academic_year",
		"assignment_score", "midterm_score", "final_exam_score", "final_score", "letter_grade").
		From("grades").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	grade := &models.Grade{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Semester, &grade.AcademicYear,
		&grade.Assignment, &grade.Midterm, &grade.FinalExam, &grade.FinalScore, &grade.LetterGrade,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrGradeNotFound)
	}

	return grade, nil
}

// GetGrades retrieves grades matching the filter, restricted by the caller's
// scope, with course details preloaded. A nil scope means unrestricted.
func (r *GradeRepository) GetGrades(ctx context.Context, filter GradeFilter, scope squirrel.Sqlizer) ([]*models.Grade, error) {
	builder := r.sb.Select(
		"grades.id", "grades.student_id", "grades.course_id", "grades.semester", "grades.academic_year",
		"grades.assignment_score", "grades.midterm_score", "grades.final_exam_score",
		"grades.final_score", "grades.letter_grade",
		"c.id", "c.program_id", "c.code", "c.name", "c.credit_hours").
		From("grades").
		Join("courses c ON c.id = grades.course_id").
		OrderBy("grades.academic_year DESC", "grades.semester DESC", "c.code ASC")

	if filter.StudentID > 0 {
		builder = builder.Where(squirrel.Eq{"grades.student_id": filter.StudentID})
	}
	if filter.CourseID > 0 {
		builder = builder.Where(squirrel.Eq{"grades.course_id": filter.CourseID})
	}
	if filter.Semester > 0 {
		builder = builder.Where(squirrel.Eq{"grades.semester": filter.Semester})
	}
	if filter.AcademicYear != "" {
		builder = builder.Where(squirrel.Eq{"grades.academic_year": filter.AcademicYear})
	}
	if scope != nil {
		builder = builder.Where(scope)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade := &models.Grade{Course: &models.Course{}}
		if err := rows.Scan(
			&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Semester, &grade.AcademicYear,
			&grade.Assignment, &grade.Midterm, &grade.FinalExam,
			&grade.FinalScore, &grade.LetterGrade,
			&grade.Course.ID, &grade.Course.ProgramID, &grade.Course.Code, &grade.Course.Name, &grade.Course.CreditHours,
		); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}

	return grades, nil
}

// DeleteGrade removes a grade row
func (r *GradeRepository) DeleteGrade(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("grades").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
