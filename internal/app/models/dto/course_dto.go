package dto

// AddCourseRequest creates a course owned by the caller
type AddCourseRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCourseRequest renames a course owned by the caller
type UpdateCourseRequest struct {
	CourseID int64  `json:"courseId" binding:"required,min=1"`
	Name     string `json:"name" binding:"required"`
}

// DeleteCourseRequest deletes a course and its grades
type DeleteCourseRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}
