package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/ccasilihan/gradebook/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// studentRepository is the subset of the student repository the service needs
type studentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateProfile(ctx context.Context, id int64, name, passwordHash string) (*models.Student, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo       studentRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(repo studentRepository, jwtService *auth.JWTService, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:       repo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an account with a bcrypt-hashed password. The returned
// model never serializes the hash.
func (s *studentService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Student, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
	}

	if _, err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student registered")
	return student, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password return the same error so callers cannot tell which one
// failed.
func (s *studentService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	student, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.ID, student.Name)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.TokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// Profile returns the caller's own name and email
func (s *studentService) Profile(ctx context.Context, studentID int64) (*dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.StudentResponse{Name: student.Name, Email: student.Email}, nil
}

// ChangePassword resets the password of the account with req.Email. The
// target must be the caller's own account.
func (s *studentService) ChangePassword(ctx context.Context, studentID int64, req *dto.ChangePasswordRequest) error {
	student, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(student.Email, req.Email) {
		return apperrors.ErrPermissionDenied
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.repo.UpdatePasswordByEmail(ctx, student.Email, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Password changed")
	return nil
}

// UpdateProfile updates the caller's name and optionally the password.
// An empty password leaves the current hash untouched.
func (s *studentService) UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateProfileRequest) (*models.Student, error) {
	hash := ""
	if req.Password != "" {
		var err error
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	return s.repo.UpdateProfile(ctx, studentID, req.Name, hash)
}

// DeleteAccount removes the caller's account. Owned courses and grades
// stay behind.
func (s *studentService) DeleteAccount(ctx context.Context, studentID int64) error {
	if err := s.repo.Delete(ctx, studentID); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", studentID).Msg("Account deleted")
	return nil
}
