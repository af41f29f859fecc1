package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"cybershield/internal/models"
	"cybershield/internal/repositories"
)

// UserService covers profile management plus the admin-only account
// operations. Role changes through UpdateUserProfile are limited to the
// general/business pair; granting admin goes through UpdateUserRole.
type UserService interface {
	GetUserProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID primitive.ObjectID, updatePayload *models.UserProfileUpdate) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID primitive.ObjectID, role string) (*models.User, error)
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error
	GetTotalUsers(ctx context.Context) (int64, error)
}

type userService struct {
	userRepo        repositories.UserRepository
	totalUsersGauge prometheus.Gauge
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) UserService {
	s := &userService{
		userRepo: userRepo,
		totalUsersGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "app_total_users",
			Help: "Total number of registered users in the application.",
		}),
	}
	go s.updateTotalUsersPeriodically()
	return s
}

func (s *userService) GetTotalUsers(ctx context.Context) (int64, error) {
	return s.userRepo.CountAll(ctx)
}

func (s *userService) updateTotalUsersPeriodically() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		count, err := s.GetTotalUsers(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error updating total users gauge")
		} else {
			s.totalUsersGauge.Set(float64(count))
		}
		cancel()
	}
}

func (s *userService) GetUserProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	log.Debug().Str("user_id", userID.Hex()).Msg("Attempting to retrieve user profile")
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to fetch user profile")
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}

	user.Password = ""
	return user, nil
}

// UpdateUserProfile applies a partial update of name, email and the
// role-conditional business profile. Switching to business requires all
// three business fields; switching back to general clears them.
func (s *userService) UpdateUserProfile(ctx context.Context, userID primitive.ObjectID, updatePayload *models.UserProfileUpdate) (*models.User, error) {
	log.Debug().Str("user_id", userID.Hex()).Msg("Attempting to update user profile")

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify current user data: %w", err)
	}

	updateFields := bson.M{}

	if updatePayload.Name != "" {
		updateFields["name"] = strings.TrimSpace(updatePayload.Name)
	}

	if updatePayload.Email != nil {
		normalized := NormalizeEmail(*updatePayload.Email)
		if normalized == "" {
			return nil, ErrMissingFields
		}
		if normalized != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, normalized)
			if err == nil && existing != nil && existing.ID != userID {
				log.Warn().Str("email", normalized).Msg("Email already in use by another account during profile update")
				return nil, ErrEmailTaken
			} else if err != nil && err != mongo.ErrNoDocuments {
				return nil, fmt.Errorf("failed to check email availability: %w", err)
			}
		}
		updateFields["email"] = normalized
	}

	if updatePayload.Role != "" {
		switch updatePayload.Role {
		case models.RoleBusiness:
			name := strings.TrimSpace(updatePayload.BusinessName)
			address := strings.TrimSpace(updatePayload.BusinessAddress)
			abn := strings.TrimSpace(updatePayload.BusinessAbn)
			if name == "" || address == "" || abn == "" {
				return nil, fmt.Errorf("%w: business accounts require businessName, businessAddress and businessAbn", ErrMissingFields)
			}
			updateFields["role"] = models.RoleBusiness
			updateFields["business_name"] = name
			updateFields["business_address"] = address
			updateFields["business_abn"] = abn
		case models.RoleGeneral:
			updateFields["role"] = models.RoleGeneral
			if user.Role == models.RoleBusiness {
				updateFields["business_name"] = ""
				updateFields["business_address"] = ""
				updateFields["business_abn"] = ""
			}
		default:
			// Self-service role changes stop at general/business; admin is
			// granted only through the admin role endpoint.
			return nil, ErrInvalidRole
		}
	}

	if len(updateFields) == 0 {
		return nil, ErrMissingFields
	}
	updateFields["updated_at"] = time.Now()

	result, err := s.userRepo.Update(ctx, userID, updateFields)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}

	updatedUser, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching updated user profile")
		return nil, fmt.Errorf("failed to retrieve updated user profile: %w", err)
	}
	updatedUser.Password = ""

	log.Info().Str("user_id", userID.Hex()).Msg("User profile updated successfully")
	return updatedUser, nil
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		log.Warn().Str("user_id", userID.Hex()).Msg("Current password mismatch during password update")
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to hash new password")
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if _, err := s.userRepo.Update(ctx, userID, bson.M{
		"password":   string(hashedPassword),
		"updated_at": time.Now(),
	}); err != nil {
		return err
	}

	log.Info().Str("user_id", userID.Hex()).Msg("User password updated successfully")
	return nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// UpdateUserRole is the admin-only role change. Leaving the business role
// clears the business profile so the role-conditional invariant holds.
func (s *userService) UpdateUserRole(ctx context.Context, userID primitive.ObjectID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	updateFields := bson.M{"role": role, "updated_at": time.Now()}
	if user.Role == models.RoleBusiness && role != models.RoleBusiness {
		updateFields["business_name"] = ""
		updateFields["business_address"] = ""
		updateFields["business_abn"] = ""
	}

	if _, err := s.userRepo.Update(ctx, userID, updateFields); err != nil {
		return nil, err
	}

	updatedUser, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated user: %w", err)
	}
	updatedUser.Password = ""

	log.Info().Str("user_id", userID.Hex()).Str("role", role).Msg("User role updated")
	return updatedUser, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	log.Debug().Str("user_id", userID.Hex()).Msg("Attempting to delete user account")
	result, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}

	log.Info().Str("user_id", userID.Hex()).Msg("User account deleted successfully")

	if count, err := s.GetTotalUsers(ctx); err == nil {
		s.totalUsersGauge.Set(float64(count))
	}
	return nil
}
