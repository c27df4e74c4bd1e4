package controllers

import (
	"net/http"

	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/app/services"
	"github.com/ccasilihan/gradebook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StudentController handles account registration, login and profile routes
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// Register creates a new account
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration payload")
		respondBadRequest(ctx, err)
		return
	}

	student, err := c.studentService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, okResponse(student))
}

// Login verifies credentials and returns a token
func (c *StudentController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login payload")
		respondBadRequest(ctx, err)
		return
	}

	token, err := c.studentService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(token))
}

// Profile returns the caller's name and email
func (c *StudentController) Profile(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	profile, err := c.studentService.Profile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(profile))
}

// ChangePassword resets the caller's password
func (c *StudentController) ChangePassword(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.studentService.ChangePassword(ctx.Request.Context(), studentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messageResponse("Password updated successfully"))
}

// UpdateProfile updates the caller's name and optionally the password
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, okResponse(student))
}

// DeleteAccount removes the caller's account
func (c *StudentController) DeleteAccount(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	if err := c.studentService.DeleteAccount(ctx.Request.Context(), studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messageResponse("Account deleted successfully"))
}
