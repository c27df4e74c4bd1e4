package models

// Grade holds the four term grades recorded for a course.
type Grade struct {
	GradeID     int64   `json:"grade_id" db:"grade_id"`
	StudentID   int64   `json:"student_id" db:"student_id"`
	CourseID    int64   `json:"course_id" db:"course_id"`
	PrelimGrade float64 `json:"prelim_grade" db:"prelim_grade"`
	MidGrade    float64 `json:"mid_grade" db:"mid_grade"`
	SemisGrade  float64 `json:"semis_grade" db:"semis_grade"`
	FinalGrade  float64 `json:"final_grade" db:"final_grade"`
}
