package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/ccasilihan/gradebook/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// HandleAPIError maps domain errors onto HTTP responses. The login and
// registration failure statuses (400 rather than 401/409) match what the
// existing frontend expects.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound,
		apperrors.ErrStudentNotFound, apperrors.ErrCourseNotFound, apperrors.ErrGradeNotFound):
		c.JSON(http.StatusNotFound, errorBody(dto.ErrorCodeResourceNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, errorBody(dto.ErrorCodeResourceAlreadyExists, "Email is already taken"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, errorBody(dto.ErrorCodeInvalidCredentials, "Invalid email or password"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorBody(dto.ErrorCodeForbidden, "Permission denied"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, errorBody(dto.ErrorCodeValidationFailed, "Validation failed"))
	case errors.Is(err, apperrors.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, errorBody(dto.ErrorCodeValidationFailed, "Invalid or expired verification code"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, errorBody(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func errorBody(code dto.ErrorCode, message string) dto.APIResponse {
	return dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	}
}
