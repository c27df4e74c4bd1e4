package controllers

import (
	"net/http"

	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/app/services"
	"github.com/ccasilihan/gradebook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CourseController handles course routes
type CourseController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// AddCourse creates a course owned by the caller
func (c *CourseController) AddCourse(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.AddCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	course, err := c.courseService.AddCourse(ctx.Request.Context(), studentID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, okResponse(course))
}

// UpdateCourse renames one of the caller's courses
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(course))
}

// ViewCourses lists the caller's courses. No courses yields an empty list.
func (c *CourseController) ViewCourses(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(courses))
}

// DeleteCourse removes a course together with its grades
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.DeleteCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), studentID, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messageResponse("Course and related grades deleted successfully"))
}
