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
	"github.com/jackc/pgx/v5/pgxpool"
)

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(database *db.PostgresDB) *GradeRepository {
	return &GradeRepository{
		db: database.Pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a grade record owned by grade.StudentID
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	sql, args, err := r.sb.Insert("grades").
		Columns("student_id", "course_id", "prelim_grade", "mid_grade", "semis_grade", "final_grade").
		Values(grade.StudentID, grade.CourseID, grade.PrelimGrade, grade.MidGrade, grade.SemisGrade, grade.FinalGrade).
		Suffix("RETURNING grade_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create grade query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&grade.GradeID); err != nil {
		logger.Error().Err(err).Int64("courseID", grade.CourseID).Msg("Error executing create grade query")
		return nil, fmt.Errorf("error creating grade: %w", err)
	}

	return grade, nil
}

// Update replaces the four term grades of a record. Ownership is part of
// the WHERE clause, so another student's grade id comes back as not found.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	sql, args, err := r.sb.Update("grades").
		SetMap(map[string]interface{}{
			"prelim_grade": grade.PrelimGrade,
			"mid_grade":    grade.MidGrade,
			"semis_grade":  grade.SemisGrade,
			"final_grade":  grade.FinalGrade,
		}).
		Where(squirrel.Eq{"grade_id": grade.GradeID, "student_id": grade.StudentID}).
		Suffix("RETURNING grade_id, student_id, course_id, prelim_grade, mid_grade, semis_grade, final_grade").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update grade query: %w", err)
	}

	updated := &models.Grade{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&updated.GradeID, &updated.StudentID, &updated.CourseID,
		&updated.PrelimGrade, &updated.MidGrade, &updated.SemisGrade, &updated.FinalGrade,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		logger.Error().Err(err).Int64("gradeID", grade.GradeID).Msg("Error executing update grade query")
		return nil, fmt.Errorf("error updating grade: %w", err)
	}

	return updated, nil
}

// ListByCourse returns the grades studentID recorded for courseID
func (r *GradeRepository) ListByCourse(ctx context.Context, studentID, courseID int64) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select("grade_id", "student_id", "course_id", "prelim_grade", "mid_grade", "semis_grade", "final_grade").
		From("grades").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		OrderBy("grade_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(
			&grade.GradeID, &grade.StudentID, &grade.CourseID,
			&grade.PrelimGrade, &grade.MidGrade, &grade.SemisGrade, &grade.FinalGrade,
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

// Delete removes a single grade record owned by studentID
func (r *GradeRepository) Delete(ctx context.Context, gradeID, studentID int64) error {
	sql, args, err := r.sb.Delete("grades").
		Where(squirrel.Eq{"grade_id": gradeID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("gradeID", gradeID).Msg("Error executing delete grade query")
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
