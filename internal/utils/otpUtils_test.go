package utils

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6, "codes must never need zero-padding")

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestOTPExpiry(t *testing.T) {
	verify := OTPExpiry(OTPPurposeVerify)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), verify, time.Minute)

	reset := OTPExpiry(OTPPurposeReset)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), reset, time.Minute)
}
