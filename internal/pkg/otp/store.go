// Package otp implements the verification-code side channel: code
// generation plus a store with per-entry expiry and single-use consumption.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated code
const CodeLength = 6

// Store persists verification codes keyed by email address. Entries expire
// after the configured TTL and are consumed by a successful verification.
type Store interface {
	// Put stores a code for the given email, replacing any previous one.
	Put(ctx context.Context, email, code string) error
	// Consume checks the code for the given email. A match removes the
	// entry so the code cannot be replayed.
	Consume(ctx context.Context, email, code string) (bool, error)
	// Close releases any resources held by the store.
	Close() error
}

// GenerateCode creates a random numeric verification code.
func GenerateCode() (string, error) {
	max := big.NewInt(10)
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
