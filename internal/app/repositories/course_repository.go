package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/db"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/ccasilihan/gradebook/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// CourseRepository handles course database operations. It keeps a reference
// to the PostgresDB wrapper rather than the bare pool because the cascading
// delete needs WithTransaction.
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course owned by studentID
func (r *CourseRepository) Create(ctx context.Context, name string, studentID int64) (*models.Course, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "student_id").
		Values(name, studentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	course := &models.Course{Name: name, StudentID: studentID}
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing create course query")
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return course, nil
}

// Update renames a course. The owner predicate is part of the WHERE clause,
// so another student's course id comes back as not found.
func (r *CourseRepository) Update(ctx context.Context, courseID, studentID int64, name string) (*models.Course, error) {
	sql, args, err := r.sb.Update("courses").
		Set("name", name).
		Where(squirrel.Eq{"id": courseID, "student_id": studentID}).
		Suffix("RETURNING id, name, student_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name, &course.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// ListByStudent returns all courses owned by studentID
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "student_id").
		From("courses").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.StudentID); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// OwnedBy reports whether courseID exists and belongs to studentID
func (r *CourseRepository) OwnedBy(ctx context.Context, courseID, studentID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"id": courseID, "student_id": studentID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course ownership query: %w", err)
	}

	var exists bool
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error checking course ownership")
		return false, fmt.Errorf("error checking course ownership: %w", err)
	}

	return exists, nil
}

// DeleteWithGrades removes a course together with every grade recorded for
// it, atomically. The grade deletes are issued first; if the course row
// itself does not exist for this owner the transaction rolls back, so the
// grades reappear untouched and the caller sees ErrCourseNotFound.
func (r *CourseRepository) DeleteWithGrades(ctx context.Context, courseID, studentID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		gradeSQL, gradeArgs, err := r.sb.Delete("grades").
			Where(squirrel.Eq{"course_id": courseID, "student_id": studentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete grades query: %w", err)
		}

		if _, err := tx.Exec(ctx, gradeSQL, gradeArgs...); err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course grades")
			return fmt.Errorf("error deleting course grades: %w", err)
		}

		courseSQL, courseArgs, err := r.sb.Delete("courses").
			Where(squirrel.Eq{"id": courseID, "student_id": studentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete course query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, courseSQL, courseArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course")
			return fmt.Errorf("error deleting course: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Returning an error makes WithTransaction roll back the
			// grade deletions issued above.
			return apperrors.ErrCourseNotFound
		}

		return nil
	})
}
