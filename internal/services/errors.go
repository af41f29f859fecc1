package services

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP statuses.
// Anything not in this list is treated as a server error: logged with detail,
// returned to the caller as a generic message.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrWrongPassword      = errors.New("current password incorrect")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)
