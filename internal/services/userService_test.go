package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"cybershield/internal/models"
)

// newTestUserService builds the service directly so each test gets its own
// gauge without touching the default Prometheus registry.
func newTestUserService(repo *fakeUserRepo) UserService {
	return &userService{
		userRepo:        repo,
		totalUsersGauge: prometheus.NewGauge(prometheus.GaugeOpts{Name: "app_total_users_test"}),
	}
}

func seedUser(repo *fakeUserRepo, email, password, role string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Seed User",
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	repo.users[user.ID] = user
	return user
}

func TestGetUserProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)
	user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

	profile, err := svc.GetUserProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Empty(t, profile.Password)

	_, err = svc.GetUserProfile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserProfile(t *testing.T) {
	t.Run("updates name and email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		newEmail := "New.Alice@Example.com"
		updated, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{
			Name:  "Alice Updated",
			Email: &newEmail,
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Updated", updated.Name)
		assert.Equal(t, "new.alice@example.com", updated.Email)
	})

	t.Run("rejects an email owned by another account", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)
		seedUser(repo, "taken@example.com", "password123", models.RoleGeneral)

		taken := "Taken@Example.com"
		_, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{Email: &taken})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		same := "ALICE@example.com"
		updated, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{Email: &same})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("switching to business requires the full profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		_, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{
			Role:         models.RoleBusiness,
			BusinessName: "Alice Pty Ltd",
		})
		assert.ErrorIs(t, err, ErrMissingFields)

		updated, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{
			Role:            models.RoleBusiness,
			BusinessName:    "Alice Pty Ltd",
			BusinessAddress: "1 Example St",
			BusinessAbn:     "12345678901",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleBusiness, updated.Role)
		assert.Equal(t, "Alice Pty Ltd", updated.BusinessName)
	})

	t.Run("switching back to general clears the business profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleBusiness)
		repo.users[user.ID].BusinessName = "Alice Pty Ltd"
		repo.users[user.ID].BusinessAddress = "1 Example St"
		repo.users[user.ID].BusinessAbn = "12345678901"

		updated, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{
			Role: models.RoleGeneral,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleGeneral, updated.Role)
		assert.Empty(t, updated.BusinessName)
		assert.Empty(t, updated.BusinessAbn)
	})

	t.Run("cannot grant admin to yourself", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		_, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{
			Role: models.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		_, err := svc.UpdateUserProfile(context.Background(), user.ID, &models.UserProfileUpdate{})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestUpdateUserPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)
	user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdateUserPassword(context.Background(), user.ID, "not-it", "new-password")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("short new password", func(t *testing.T) {
		err := svc.UpdateUserPassword(context.Background(), user.ID, "password123", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("success", func(t *testing.T) {
		err := svc.UpdateUserPassword(context.Background(), user.ID, "password123", "new-password")
		require.NoError(t, err)

		stored := repo.users[user.ID]
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password")))
	})
}

func TestUpdateUserRole(t *testing.T) {
	t.Run("promotes to admin", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		updated, err := svc.UpdateUserRole(context.Background(), user.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("leaving business clears the profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "bob@example.com", "password123", models.RoleBusiness)
		repo.users[user.ID].BusinessName = "Bob Pty Ltd"

		updated, err := svc.UpdateUserRole(context.Background(), user.ID, models.RoleGeneral)
		require.NoError(t, err)
		assert.Empty(t, updated.BusinessName)
	})

	t.Run("invalid role", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(repo)
		user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

		_, err := svc.UpdateUserRole(context.Background(), user.ID, "root")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)
	user := seedUser(repo, "alice@example.com", "password123", models.RoleGeneral)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), user.ID), ErrUserNotFound)

	count, _ := repo.CountAll(context.Background())
	assert.EqualValues(t, 0, count)
}
