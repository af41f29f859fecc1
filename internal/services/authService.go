package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"cybershield/internal/metrics"
	"cybershield/internal/models"
	"cybershield/internal/repositories"
	"cybershield/internal/templates"
	"cybershield/internal/utils"
)

const bcryptCost = 10

// AuthService sequences validation, storage and notification side effects for
// the authentication and OTP flows. Every operation follows the same check
// order: existence, then secret equality, then expiry, then mutation.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, creds *models.Login) (string, error)
	SendVerifyOTP(ctx context.Context, userID primitive.ObjectID) error
	VerifyEmail(ctx context.Context, userID primitive.ObjectID, otp string) error
	SendResetOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

type authService struct {
	userRepo     repositories.UserRepository
	emailService EmailService
}

func NewAuthService(userRepo repositories.UserRepository, emailService EmailService) AuthService {
	return &authService{userRepo: userRepo, emailService: emailService}
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index treat casing/whitespace variants as the same address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and logs it in immediately. The
// welcome email is best-effort: the account stands even if dispatch fails.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	email := NormalizeEmail(req.Email)
	log.Debug().Str("email", email).Msg("Attempting to register user")

	if req.Name == "" || email == "" || req.Password == "" {
		return nil, "", ErrMissingFields
	}

	role := req.Role
	if role == "" {
		role = models.RoleGeneral
	}
	if !models.ValidRole(role) {
		return nil, "", ErrInvalidRole
	}
	if role == models.RoleBusiness {
		if strings.TrimSpace(req.BusinessName) == "" ||
			strings.TrimSpace(req.BusinessAddress) == "" ||
			strings.TrimSpace(req.BusinessAbn) == "" {
			return nil, "", fmt.Errorf("%w: business accounts require businessName, businessAddress and businessAbn", ErrMissingFields)
		}
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		log.Warn().Str("email", email).Msg("Registration rejected, email already exists")
		return nil, "", ErrEmailTaken
	} else if err != mongo.ErrNoDocuments {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == models.RoleBusiness {
		user.BusinessName = strings.TrimSpace(req.BusinessName)
		user.BusinessAddress = strings.TrimSpace(req.BusinessAddress)
		user.BusinessAbn = strings.TrimSpace(req.BusinessAbn)
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Str("email", email).Msg("Email already exists during user insertion")
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Could not generate token for new user")
		return nil, "", fmt.Errorf("could not generate token: %w", err)
	}

	metrics.NewUsersTotal.Inc()
	log.Info().Str("user_id", user.ID.Hex()).Str("email", user.Email).Msg("User registered successfully")

	if err := s.emailService.SendEmail(user.Email, "Welcome to CyberShield!", templates.WelcomeEmail(user.Name)); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
	}

	user.Password = ""
	return user, token, nil
}

// Login authenticates by normalized email and password. A missing account and
// a wrong password produce the same error so callers cannot enumerate
// accounts. Verification state does not gate login.
func (s *authService) Login(ctx context.Context, creds *models.Login) (string, error) {
	email := NormalizeEmail(creds.Email)
	log.Debug().Str("email", email).Msg("Attempting user login")

	if email == "" || creds.Password == "" {
		return "", ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
			log.Warn().Str("email", email).Msg("Invalid credentials during login attempt")
			return "", ErrInvalidCredentials
		}
		log.Error().Err(err).Str("email", email).Msg("Error finding user for login")
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		log.Warn().Str("email", email).Msg("Invalid credentials (password mismatch) during login attempt")
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Could not generate token for user")
		return "", fmt.Errorf("could not generate token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("User logged in successfully")
	return token, nil
}

// SendVerifyOTP puts a fresh code in the verify slot, overwriting any
// previous one, and emails it. Rejected once the account is verified.
func (s *authService) SendVerifyOTP(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if _, err := s.userRepo.Update(ctx, user.ID, bson.M{
		"verify_otp":           otp,
		"verify_otp_expire_at": utils.OTPExpiry(utils.OTPPurposeVerify),
		"updated_at":           time.Now(),
	}); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues(utils.OTPPurposeVerify).Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("Verification OTP generated")

	if err := s.emailService.SendEmail(user.Email, "Verify your account", templates.VerifyOTPEmail(user.Name, otp)); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification OTP email")
	}
	return nil
}

// VerifyEmail consumes the verify-slot code. Equality is checked before
// expiry: an expired-but-correct code reports as expired, a wrong code as
// invalid regardless of expiry. Success clears the slot.
func (s *authService) VerifyEmail(ctx context.Context, userID primitive.ObjectID, otp string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	otp = strings.TrimSpace(otp)
	if user.VerifyOtp == "" || user.VerifyOtp != otp {
		metrics.OTPConsumedTotal.WithLabelValues(utils.OTPPurposeVerify, "invalid").Inc()
		return ErrInvalidOTP
	}
	if time.Now().After(user.VerifyOtpExpireAt) {
		metrics.OTPConsumedTotal.WithLabelValues(utils.OTPPurposeVerify, "expired").Inc()
		return ErrOTPExpired
	}

	if _, err := s.userRepo.Update(ctx, user.ID, bson.M{
		"is_account_verified":  true,
		"verify_otp":           "",
		"verify_otp_expire_at": time.Time{},
		"updated_at":           time.Now(),
	}); err != nil {
		return err
	}

	metrics.OTPConsumedTotal.WithLabelValues(utils.OTPPurposeVerify, "success").Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("Email verified successfully")
	return nil
}

// SendResetOTP puts a short-lived code in the reset slot and emails it.
// Unlike login, this path does report whether the account exists; the
// asymmetry is preserved as observable API behavior.
func (s *authService) SendResetOTP(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if _, err := s.userRepo.Update(ctx, user.ID, bson.M{
		"reset_otp":           otp,
		"reset_otp_expire_at": utils.OTPExpiry(utils.OTPPurposeReset),
		"updated_at":          time.Now(),
	}); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues(utils.OTPPurposeReset).Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("Password reset OTP generated")

	if err := s.emailService.SendEmail(user.Email, "Reset your password", templates.ResetOTPEmail(user.Name, otp)); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send reset OTP email")
	}
	return nil
}

// ResetPassword consumes the reset-slot code and replaces the password hash,
// with the same equality-then-expiry ordering as email verification.
func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = NormalizeEmail(email)
	if email == "" || strings.TrimSpace(otp) == "" || newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	otp = strings.TrimSpace(otp)
	if user.ResetOtp == "" || user.ResetOtp != otp {
		metrics.OTPConsumedTotal.WithLabelValues(utils.OTPPurposeReset, "invalid").Inc()
		return ErrInvalidOTP
	}
	if time.Now().After(user.ResetOtpExpireAt) {
		metrics.OTPConsumedTotal.WithLabelValues(utils.OTPPurposeReset, "expired").Inc()
		return ErrOTPExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash new password during reset")
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.userRepo.Update(ctx, user.ID, bson.M{
		"password":            string(hashedPassword),
		"reset_otp":           "",
		"reset_otp_expire_at": time.Time{},
		"updated_at":          time.Now(),
	}); err != nil {
		return err
	}

	metrics.OTPConsumedTotal.WithLabelValues(utils.OTPPurposeReset, "success").Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("Password reset successfully")
	return nil
}
