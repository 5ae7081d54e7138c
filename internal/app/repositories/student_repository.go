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

// StudentFilter narrows student listings.
type StudentFilter struct {
	ProgramID  int64
	ClassID    int64
	CohortYear int
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudent inserts a student row, joining the caller's transaction so
// the account and the student record commit together.
func (r *StudentRepository) CreateStudent(ctx context.Context, runner DBTX, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "nim", "name", "program_id", "class_id", "cohort_year", "sex", "address").
		Values(
			student.UserID, student.NIM, student.Name, student.ProgramID,
			helpers.GetNullInt64(student.ClassID), student.CohortYear,
			helpers.GetNullString(&student.Sex), helpers.GetNullString(&student.Address),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := runner.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueConstraintError(err, "students_nim_key") {
			return 0, apperrors.ErrNIMAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrReferentialIntegrity
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"id": id})
}

// GetStudentByUserID retrieves the student record linked to an account
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"user_id": userID})
}

func (r *StudentRepository) getStudent(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select("id", "user_id", "nim", "name", "program_id", "class_id", "cohort_year", "COALESCE(sex, '')", "COALESCE(address, '')").
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.UserID, &student.NIM, &student.Name,
		&student.ProgramID, &student.ClassID, &student.CohortYear,
		&student.Sex, &student.Address,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrStudentNotFound)
	}

	return student, nil
}

// GetStudents retrieves a paginated, filtered list of students with the total count
func (r *StudentRepository) GetStudents(ctx context.Context, filter StudentFilter, offset, limit int) ([]*models.Student, int64, error) {
	where := squirrel.And{}
	if filter.ProgramID > 0 {
		where = append(where, squirrel.Eq{"program_id": filter.ProgramID})
	}
	if filter.ClassID > 0 {
		where = append(where, squirrel.Eq{"class_id": filter.ClassID})
	}
	if filter.CohortYear > 0 {
		where = append(where, squirrel.Eq{"cohort_year": filter.CohortYear})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("students")
	listBuilder := r.sb.Select("id", "user_id", "nim", "name", "program_id", "class_id", "cohort_year", "COALESCE(sex, '')", "COALESCE(address, '')").
		From("students").
		OrderBy("nim ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
		listBuilder = listBuilder.Where(where)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID, &student.UserID, &student.NIM, &student.Name,
			&student.ProgramID, &student.ClassID, &student.CohortYear,
			&student.Sex, &student.Address,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

// GetStudentsByClass retrieves every student assigned to a class, used when
// a lecturer records attendance for a meeting.
func (r *StudentRepository) GetStudentsByClass(ctx context.Context, classID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("id", "user_id", "nim", "name", "program_id", "class_id", "cohort_year", "COALESCE(sex, '')", "COALESCE(address, '')").
		From("students").
		Where(squirrel.Eq{"class_id": classID}).
		OrderBy("nim ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get students by class query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying class students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID, &student.UserID, &student.NIM, &student.Name,
			&student.ProgramID, &student.ClassID, &student.CohortYear,
			&student.Sex, &student.Address,
		); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateStudent updates an existing student record
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"nim":         student.NIM,
			"name":        student.Name,
			"program_id":  student.ProgramID,
			"class_id":    helpers.GetNullInt64(student.ClassID),
			"cohort_year": student.CohortYear,
			"sex":         helpers.GetNullString(&student.Sex),
			"address":     helpers.GetNullString(&student.Address),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrNIMAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
