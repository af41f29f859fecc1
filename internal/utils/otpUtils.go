package utils

import (
	"crypto/rand"
	"math/big"
	"time"
)

const (
	OTPPurposeVerify = "verify"
	OTPPurposeReset  = "reset"

	verifyOTPValidity = 24 * time.Hour
	resetOTPValidity  = 15 * time.Minute
)

// GenerateOTP returns a 6-digit code drawn uniformly from [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := n.Add(n, big.NewInt(100000))
	return code.String(), nil
}

// OTPExpiry returns the absolute expiry instant for a freshly generated code.
// Verification codes live for a day, reset codes for fifteen minutes.
func OTPExpiry(purpose string) time.Time {
	if purpose == OTPPurposeReset {
		return time.Now().Add(resetOTPValidity)
	}
	return time.Now().Add(verifyOTPValidity)
}
