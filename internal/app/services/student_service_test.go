package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/ccasilihan/gradebook/internal/pkg/auth"
	"github.com/rs/zerolog"
)

type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) (int64, error) {
	for _, s := range f.students {
		if s.Email == student.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	student.ID = f.nextID
	f.nextID++
	copied := *student
	f.students[student.ID] = &copied
	return student.ID, nil
}

func (f *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentRepo) UpdateProfile(_ context.Context, id int64, name, passwordHash string) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	s.Name = name
	if passwordHash != "" {
		s.Password = passwordHash
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentRepo) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	for _, s := range f.students {
		if s.Email == email {
			s.Password = passwordHash
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func newTestStudentService(repo *fakeStudentRepo) StudentService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "gradebook-test",
	})
	return NewStudentService(repo, jwtService, zerolog.Nop())
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)

	student, err := service.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "plain-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored := repo.students[student.ID]
	if stored.Password == "plain-password" {
		t.Fatal("expected stored password to be hashed")
	}
	if !auth.CheckPassword(stored.Password, "plain-password") {
		t.Fatal("expected stored hash to verify against the plain password")
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	req := &dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "plain-password"}
	if _, err := service.Register(ctx, req); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Register(ctx, req)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "plain-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := service.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "plain-password"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if token.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s lifetime, got %d", token.ExpiresIn)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "gradebook-test"})
	claims, err := jwtService.ValidateToken(token.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.StudentID != student.ID {
		t.Fatalf("expected student id %d in claims, got %d", student.ID, claims.StudentID)
	}
	if claims.Name != "Alice" {
		t.Fatalf("expected name Alice in claims, got %q", claims.Name)
	}
}

func TestLoginFailureParity(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	if _, err := service.Register(ctx, &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "plain-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// An unknown email and a wrong password must be indistinguishable.
	_, unknownErr := service.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "plain-password"})
	_, wrongErr := service.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})

	if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestChangePasswordOwnAccount(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "old-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = service.ChangePassword(ctx, student.ID, &dto.ChangePasswordRequest{
		Email:    "alice@example.com",
		Password: "new-password",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := service.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "old-password"}); err == nil {
		t.Fatal("expected old password to stop working")
	}
	if _, err := service.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "new-password"}); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestChangePasswordOtherAccount(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	alice, err := service.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "alice-password",
	})
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := service.Register(ctx, &dto.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "bob-password",
	}); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	err = service.ChangePassword(ctx, alice.ID, &dto.ChangePasswordRequest{
		Email:    "bob@example.com",
		Password: "hijacked",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// Bob's password is untouched.
	if _, err := service.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "bob-password"}); err != nil {
		t.Fatalf("expected bob's password to still work, got %v", err)
	}
}

func TestUpdateProfileKeepsPasswordWhenEmpty(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "plain-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := service.UpdateProfile(ctx, student.ID, &dto.UpdateProfileRequest{Name: "Alicia"})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Alicia" {
		t.Fatalf("expected renamed profile, got %q", updated.Name)
	}

	if _, err := service.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "plain-password"}); err != nil {
		t.Fatalf("expected password to survive a name-only update, got %v", err)
	}
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "old-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.UpdateProfile(ctx, student.ID, &dto.UpdateProfileRequest{
		Name:     "Alice",
		Password: "new-password",
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if _, err := service.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "new-password"}); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestProfileNeverExposesPassword(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "plain-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := service.Profile(ctx, student.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != "Alice" || profile.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if strings.Contains(strings.ToLower(student.Password), "plain") {
		t.Fatal("expected hashed password on the model")
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newFakeStudentRepo()
	service := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "plain-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.DeleteAccount(ctx, student.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := service.Profile(ctx, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound after delete, got %v", err)
	}
}
