package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	id := primitive.NewObjectID()
	token, err := GenerateJWT(id, "business")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), claims.ID)
	assert.Equal(t, "business", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenValidity), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWTFailures(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseJWT("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		id := primitive.NewObjectID()
		token, err := GenerateJWT(id, "general")
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "a-different-secret")
		_, err = ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &Claims{
			ID: primitive.NewObjectID().Hex(),
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * TokenValidity)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-TokenValidity)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ID: "abc"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing id claim", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
