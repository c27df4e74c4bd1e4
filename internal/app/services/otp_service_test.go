package services

import (
	"context"
	"testing"
	"time"

	"github.com/ccasilihan/gradebook/internal/pkg/otp"
	"github.com/rs/zerolog"
)

type fakeSender struct {
	sentTo   []string
	sentCode string
	err      error
}

func (f *fakeSender) SendOTPEmail(toEmail, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, toEmail)
	f.sentCode = code
	return nil
}

func TestSendAndVerifyCode(t *testing.T) {
	store := otp.NewMemoryStore(time.Minute)
	defer store.Close()
	sender := &fakeSender{}
	service := NewOTPService(store, sender, zerolog.Nop())
	ctx := context.Background()

	if err := service.SendCode(ctx, "alice@example.com"); err != nil {
		t.Fatalf("send code: %v", err)
	}
	if len(sender.sentTo) != 1 || sender.sentTo[0] != "alice@example.com" {
		t.Fatalf("expected one mail to alice, got %+v", sender.sentTo)
	}
	if len(sender.sentCode) != 6 {
		t.Fatalf("expected 6-digit code, got %q", sender.sentCode)
	}

	valid, err := service.VerifyCode(ctx, "alice@example.com", sender.sentCode)
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if !valid {
		t.Fatal("expected mailed code to verify")
	}

	// A verified code is consumed and cannot be replayed.
	valid, err = service.VerifyCode(ctx, "alice@example.com", sender.sentCode)
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if valid {
		t.Fatal("expected consumed code to fail a second verification")
	}
}

func TestVerifyCodeWrongEmail(t *testing.T) {
	store := otp.NewMemoryStore(time.Minute)
	defer store.Close()
	sender := &fakeSender{}
	service := NewOTPService(store, sender, zerolog.Nop())
	ctx := context.Background()

	if err := service.SendCode(ctx, "alice@example.com"); err != nil {
		t.Fatalf("send code: %v", err)
	}

	valid, err := service.VerifyCode(ctx, "bob@example.com", sender.sentCode)
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if valid {
		t.Fatal("expected code bound to another email to fail")
	}
}
