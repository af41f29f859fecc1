package middlewares

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cybershield/internal/contextkeys"
	"cybershield/internal/repositories"
	"cybershield/internal/utils"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// AuthMiddleware is the per-request session guard. It verifies the token
// cookie and loads the account fresh from the store, so a role claim baked
// into an old token is never trusted. Missing, malformed, badly signed and
// expired tokens all produce the same 401 response.
type AuthMiddleware struct {
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseJWT(cookie.Value)
		if err != nil {
			utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
				return
			}
			log.Error().Err(err).Str("user_id", claims.ID).Msg("Failed to load account for authenticated request")
			utils.SendJSONError(w, "Server error", http.StatusInternalServerError)
			return
		}
		user.Password = ""

		ctx := context.WithValue(r.Context(), contextkeys.User, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
