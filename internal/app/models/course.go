package models

// Course represents a course owned by a single student.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	StudentID int64  `json:"student_id" db:"student_id"`
}
