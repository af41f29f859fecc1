package middlewares

import (
	"net/http"

	"cybershield/internal/models"
	"cybershield/internal/utils"
)

// AdminOnly is the role gate for admin-restricted operations. It consumes
// the account attached by AuthMiddleware, so it must sit behind Authenticate.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := utils.GetUserFromContext(r)
		if err != nil {
			utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
			return
		}
		if user.Role != models.RoleAdmin {
			utils.SendJSONError(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
