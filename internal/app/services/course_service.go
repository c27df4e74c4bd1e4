package services

import (
	"context"

	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// courseRepository is the subset of the course repository the service needs
type courseRepository interface {
	Create(ctx context.Context, name string, studentID int64) (*models.Course, error)
	Update(ctx context.Context, courseID, studentID int64, name string) (*models.Course, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
	DeleteWithGrades(ctx context.Context, courseID, studentID int64) error
}

type courseService struct {
	repo   courseRepository
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo courseRepository, logger zerolog.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// AddCourse creates a course owned by the caller
func (s *courseService) AddCourse(ctx context.Context, studentID int64, name string) (*models.Course, error) {
	return s.repo.Create(ctx, name, studentID)
}

// UpdateCourse renames one of the caller's courses
func (s *courseService) UpdateCourse(ctx context.Context, studentID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	return s.repo.Update(ctx, req.CourseID, studentID, req.Name)
}

// ListCourses returns the caller's courses. An empty result is a valid
// response, not an error.
func (s *courseService) ListCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// DeleteCourse removes a course and all grades recorded for it in a single
// transaction. A course that does not exist for this owner leaves the
// grades untouched.
func (s *courseService) DeleteCourse(ctx context.Context, studentID, courseID int64) error {
	if err := s.repo.DeleteWithGrades(ctx, courseID, studentID); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", courseID).Int64("studentID", studentID).Msg("Course and related grades deleted")
	return nil
}
