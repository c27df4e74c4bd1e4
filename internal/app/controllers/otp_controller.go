package controllers

import (
	"net/http"

	"github.com/ccasilihan/gradebook/internal/app/models/dto"
	"github.com/ccasilihan/gradebook/internal/app/services"
	"github.com/ccasilihan/gradebook/internal/middleware"
	"github.com/ccasilihan/gradebook/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OTPController handles the email verification-code routes
type OTPController struct {
	otpService services.OTPService
	logger     zerolog.Logger
}

// NewOTPController creates a new OTPController
func NewOTPController(otpService services.OTPService, logger zerolog.Logger) *OTPController {
	return &OTPController{
		otpService: otpService,
		logger:     logger,
	}
}

// SendEmail generates a verification code and mails it to the given address
func (c *OTPController) SendEmail(ctx *gin.Context) {
	var req dto.SendOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.otpService.SendCode(ctx.Request.Context(), req.Email); err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to send verification code")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messageResponse("Verification code sent"))
}

// VerifyOTP checks a code. A matching code is consumed and cannot be
// verified a second time.
func (c *OTPController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	valid, err := c.otpService.VerifyCode(ctx.Request.Context(), req.Email, req.OTP)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !valid {
		middleware.HandleAPIError(ctx, apperrors.ErrOTPInvalid)
		return
	}

	ctx.JSON(http.StatusOK, messageResponse("Verification successful"))
}
