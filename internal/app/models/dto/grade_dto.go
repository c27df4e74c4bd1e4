package dto

// AddGradeRequest records term grades for one of the caller's courses.
// Field names mirror the grades table columns, matching what the frontend
// sends.
type AddGradeRequest struct {
	CourseID    int64   `json:"course_id" binding:"required,min=1"`
	PrelimGrade float64 `json:"prelim_grade"`
	MidGrade    float64 `json:"mid_grade"`
	SemisGrade  float64 `json:"semis_grade"`
	FinalGrade  float64 `json:"final_grade"`
}

// UpdateGradeRequest replaces the term grades of an existing record
type UpdateGradeRequest struct {
	GradeID     int64   `json:"grade_id" binding:"required,min=1"`
	PrelimGrade float64 `json:"prelim_grade"`
	MidGrade    float64 `json:"mid_grade"`
	SemisGrade  float64 `json:"semis_grade"`
	FinalGrade  float64 `json:"final_grade"`
}

// DeleteGradeRequest removes a single grade record
type DeleteGradeRequest struct {
	GradeID int64 `json:"grade_id" binding:"required,min=1"`
}
