package services

import (
	"context"

	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// gradeRepository is the subset of the grade repository the service needs
type gradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	ListByCourse(ctx context.Context, studentID, courseID int64) ([]*models.Grade, error)
	Delete(ctx context.Context, gradeID, studentID int64) error
}

// courseOwnership checks that a course belongs to a student
type courseOwnership interface {
	OwnedBy(ctx context.Context, courseID, studentID int64) (bool, error)
}

type gradeService struct {
	repo    gradeRepository
	courses courseOwnership
	logger  zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(repo gradeRepository, courses courseOwnership, logger zerolog.Logger) GradeService {
	return &gradeService{repo: repo, courses: courses, logger: logger}
}

// AddGrade records term grades for one of the caller's courses. The course
// must belong to the caller; a foreign course id comes back as not found.
func (s *gradeService) AddGrade(ctx context.Context, studentID int64, req *dto.AddGradeRequest) (*models.Grade, error) {
	owned, err := s.courses.OwnedBy(ctx, req.CourseID, studentID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperrors.ErrCourseNotFound
	}

	grade := &models.Grade{
		StudentID:   studentID,
		CourseID:    req.CourseID,
		PrelimGrade: req.PrelimGrade,
		MidGrade:    req.MidGrade,
		SemisGrade:  req.SemisGrade,
		FinalGrade:  req.FinalGrade,
	}
	return s.repo.Create(ctx, grade)
}

// UpdateGrade replaces the term grades of one of the caller's records
func (s *gradeService) UpdateGrade(ctx context.Context, studentID int64, req *dto.UpdateGradeRequest) (*models.Grade, error) {
	grade := &models.Grade{
		GradeID:     req.GradeID,
		StudentID:   studentID,
		PrelimGrade: req.PrelimGrade,
		MidGrade:    req.MidGrade,
		SemisGrade:  req.SemisGrade,
		FinalGrade:  req.FinalGrade,
	}
	return s.repo.Update(ctx, grade)
}

// ListGrades returns the caller's grades for a course. An empty result is
// a valid response, not an error.
func (s *gradeService) ListGrades(ctx context.Context, studentID, courseID int64) ([]*models.Grade, error) {
	return s.repo.ListByCourse(ctx, studentID, courseID)
}

// DeleteGrade removes a single grade record owned by the caller
func (s *gradeService) DeleteGrade(ctx context.Context, studentID, gradeID int64) error {
	return s.repo.Delete(ctx, gradeID, studentID)
}
