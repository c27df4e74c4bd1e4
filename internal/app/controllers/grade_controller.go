package controllers

import (
	"net/http"
	"strconv"

	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/app/services"
	"github.com/ccasilihan/gradebook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GradeController handles grade routes
type GradeController struct {
	gradeService services.GradeService
	logger       zerolog.Logger
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService, logger zerolog.Logger) *GradeController {
	return &GradeController{
		gradeService: gradeService,
		logger:       logger,
	}
}

// AddGrade records term grades for one of the caller's courses
func (c *GradeController) AddGrade(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.AddGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	grade, err := c.gradeService.AddGrade(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, okResponse(grade))
}

// UpdateGrade replaces the term grades of one of the caller's records
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(grade))
}

// ViewGrades lists the caller's grades for a course given by the course_id
// query parameter. No grades yields an empty list.
func (c *GradeController) ViewGrades(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	courseIDParam := ctx.Query("course_id")
	courseID, err := strconv.ParseInt(courseIDParam, 10, 64)
	if err != nil || courseID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course_id parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grades, err := c.gradeService.ListGrades(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(grades))
}

// DeleteGrade removes a single grade record
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.DeleteGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.gradeService.DeleteGrade(ctx.Request.Context(), studentID, req.GradeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messageResponse("Grade deleted successfully"))
}
