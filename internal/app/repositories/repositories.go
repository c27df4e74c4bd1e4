package repositories

import (
	"github.com/ccasilihan/gradebook/internal/db"
)

// Repositories bundles all database repositories
type Repositories struct {
	Students *StudentRepository
	Courses  *CourseRepository
	Grades   *GradeRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Students: NewStudentRepository(database),
		Courses:  NewCourseRepository(database),
		Grades:   NewGradeRepository(database),
	}
}
