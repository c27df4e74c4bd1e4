// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currentStudentID reads the caller identity placed on the context by the
// auth middleware. ok is false when the route was wired without it.
func currentStudentID(ctx *gin.Context) (int64, bool) {
	v, exists := ctx.Get(middleware.ContextStudentID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// respondMissingIdentity rejects a request that reached an authenticated
// handler without identity on the context.
func respondMissingIdentity(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// respondBadRequest reports a payload that failed binding or validation
func respondBadRequest(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func okResponse(data interface{}) dto.APIResponse {
	return dto.APIResponse{Data: data, Timestamp: time.Now()}
}

func messageResponse(message string) dto.APIResponse {
	return dto.APIResponse{Message: message, Timestamp: time.Now()}
}
