package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ccasilihan/gradebook/internal/app/models"
	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type fakeGradeRepo struct {
	grades map[int64]*models.Grade
	nextID int64
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{grades: make(map[int64]*models.Grade), nextID: 1}
}

func (f *fakeGradeRepo) Create(_ context.Context, grade *models.Grade) (*models.Grade, error) {
	grade.GradeID = f.nextID
	f.nextID++
	copied := *grade
	f.grades[grade.GradeID] = &copied
	return grade, nil
}

func (f *fakeGradeRepo) Update(_ context.Context, grade *models.Grade) (*models.Grade, error) {
	stored, ok := f.grades[grade.GradeID]
	if !ok || stored.StudentID != grade.StudentID {
		return nil, apperrors.ErrGradeNotFound
	}
	stored.PrelimGrade = grade.PrelimGrade
	stored.MidGrade = grade.MidGrade
	stored.SemisGrade = grade.SemisGrade
	stored.FinalGrade = grade.FinalGrade
	copied := *stored
	return &copied, nil
}

func (f *fakeGradeRepo) ListByCourse(_ context.Context, studentID, courseID int64) ([]*models.Grade, error) {
	grades := []*models.Grade{}
	for _, grade := range f.grades {
		if grade.StudentID == studentID && grade.CourseID == courseID {
			copied := *grade
			grades = append(grades, &copied)
		}
	}
	return grades, nil
}

func (f *fakeGradeRepo) Delete(_ context.Context, gradeID, studentID int64) error {
	grade, ok := f.grades[gradeID]
	if !ok || grade.StudentID != studentID {
		return apperrors.ErrGradeNotFound
	}
	delete(f.grades, gradeID)
	return nil
}

type fakeOwnership struct {
	owned map[int64]int64 // courseID -> studentID
}

func (f *fakeOwnership) OwnedBy(_ context.Context, courseID, studentID int64) (bool, error) {
	owner, ok := f.owned[courseID]
	return ok && owner == studentID, nil
}

func newTestGradeService(repo *fakeGradeRepo, owned map[int64]int64) GradeService {
	return NewGradeService(repo, &fakeOwnership{owned: owned}, zerolog.Nop())
}

func TestAddGradeOwnedCourse(t *testing.T) {
	repo := newFakeGradeRepo()
	service := newTestGradeService(repo, map[int64]int64{10: 1})

	grade, err := service.AddGrade(context.Background(), 1, &dto.AddGradeRequest{
		CourseID:    10,
		PrelimGrade: 85.5,
		MidGrade:    90,
		SemisGrade:  88,
		FinalGrade:  92.5,
	})
	if err != nil {
		t.Fatalf("add grade: %v", err)
	}
	if grade.GradeID == 0 {
		t.Fatal("expected assigned grade id")
	}
	if grade.StudentID != 1 || grade.CourseID != 10 {
		t.Fatalf("unexpected ownership on grade: %+v", grade)
	}
	if grade.FinalGrade != 92.5 {
		t.Fatalf("expected final grade 92.5, got %v", grade.FinalGrade)
	}
}

func TestAddGradeForeignCourse(t *testing.T) {
	repo := newFakeGradeRepo()
	service := newTestGradeService(repo, map[int64]int64{10: 2})

	_, err := service.AddGrade(context.Background(), 1, &dto.AddGradeRequest{CourseID: 10})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if len(repo.grades) != 0 {
		t.Fatalf("expected no grade written, got %+v", repo.grades)
	}
}

func TestUpdateGradeOwnership(t *testing.T) {
	repo := newFakeGradeRepo()
	service := newTestGradeService(repo, map[int64]int64{10: 1})
	ctx := context.Background()

	grade, err := service.AddGrade(ctx, 1, &dto.AddGradeRequest{CourseID: 10, PrelimGrade: 70})
	if err != nil {
		t.Fatalf("add grade: %v", err)
	}

	// Another student's update is not found and mutates nothing.
	_, err = service.UpdateGrade(ctx, 2, &dto.UpdateGradeRequest{GradeID: grade.GradeID, PrelimGrade: 1})
	if !errors.Is(err, apperrors.ErrGradeNotFound) {
		t.Fatalf("expected ErrGradeNotFound, got %v", err)
	}
	if repo.grades[grade.GradeID].PrelimGrade != 70 {
		t.Fatalf("expected prelim grade unchanged, got %v", repo.grades[grade.GradeID].PrelimGrade)
	}

	updated, err := service.UpdateGrade(ctx, 1, &dto.UpdateGradeRequest{
		GradeID:     grade.GradeID,
		PrelimGrade: 75,
		MidGrade:    80,
		SemisGrade:  85,
		FinalGrade:  90,
	})
	if err != nil {
		t.Fatalf("update grade: %v", err)
	}
	if updated.PrelimGrade != 75 || updated.FinalGrade != 90 {
		t.Fatalf("unexpected updated grade: %+v", updated)
	}
}

func TestListGradesEmpty(t *testing.T) {
	service := newTestGradeService(newFakeGradeRepo(), map[int64]int64{})

	grades, err := service.ListGrades(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list grades: %v", err)
	}
	if grades == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(grades) != 0 {
		t.Fatalf("expected no grades, got %d", len(grades))
	}
}

func TestDeleteGradeOwnership(t *testing.T) {
	repo := newFakeGradeRepo()
	service := newTestGradeService(repo, map[int64]int64{10: 1})
	ctx := context.Background()

	grade, err := service.AddGrade(ctx, 1, &dto.AddGradeRequest{CourseID: 10})
	if err != nil {
		t.Fatalf("add grade: %v", err)
	}

	if err := service.DeleteGrade(ctx, 2, grade.GradeID); !errors.Is(err, apperrors.ErrGradeNotFound) {
		t.Fatalf("expected ErrGradeNotFound for foreign delete, got %v", err)
	}
	if len(repo.grades) != 1 {
		t.Fatal("expected grade to survive a foreign delete")
	}

	if err := service.DeleteGrade(ctx, 1, grade.GradeID); err != nil {
		t.Fatalf("delete grade: %v", err)
	}
	if len(repo.grades) != 0 {
		t.Fatal("expected grade to be deleted")
	}
}
