package services

import (
	"context"
	"fmt"

	"github.com/ccasilihan/gradebook/internal/pkg/email"
	"github.com/ccasilihan/gradebook/internal/pkg/otp"
	"github.com/rs/zerolog"
)

type otpService struct {
	store  otp.Store
	sender email.Sender
	logger zerolog.Logger
}

// NewOTPService creates a new OTPService
func NewOTPService(store otp.Store, sender email.Sender, logger zerolog.Logger) OTPService {
	return &otpService{store: store, sender: sender, logger: logger}
}

// SendCode generates a verification code, stores it with the configured
// TTL, and mails it. A fresh code replaces any previous one for the same
// address.
func (s *otpService) SendCode(ctx context.Context, toEmail string) error {
	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, toEmail, code); err != nil {
		return err
	}

	if err := s.sender.SendOTPEmail(toEmail, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.logger.Info().Str("email", toEmail).Msg("Verification code sent")
	return nil
}

// VerifyCode checks a code against the store. A successful verification
// consumes the code, so it cannot be replayed.
func (s *otpService) VerifyCode(ctx context.Context, toEmail, code string) (bool, error) {
	return s.store.Consume(ctx, toEmail, code)
}
