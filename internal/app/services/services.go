package services

import (
	"context"

	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/app/models/dto"
)

// StudentService handles account operations
type StudentService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.Student, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Profile(ctx context.Context, studentID int64) (*dto.StudentResponse, error)
	ChangePassword(ctx context.Context, studentID int64, req *dto.ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateProfileRequest) (*models.Student, error)
	DeleteAccount(ctx context.Context, studentID int64) error
}

// CourseService handles course operations scoped to their owner
type CourseService interface {
	AddCourse(ctx context.Context, studentID int64, name string) (*models.Course, error)
	UpdateCourse(ctx context.Context, studentID int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context, studentID int64) ([]*models.Course, error)
	DeleteCourse(ctx context.Context, studentID, courseID int64) error
}

// GradeService handles grade operations scoped to their owner
type GradeService interface {
	AddGrade(ctx context.Context, studentID int64, req *dto.AddGradeRequest) (*models.Grade, error)
	UpdateGrade(ctx context.Context, studentID int64, req *dto.UpdateGradeRequest) (*models.Grade, error)
	ListGrades(ctx context.Context, studentID, courseID int64) ([]*models.Grade, error)
	DeleteGrade(ctx context.Context, studentID, gradeID int64) error
}

// OTPService handles the email verification-code side channel
type OTPService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (bool, error)
}
