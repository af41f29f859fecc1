package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cybershield/internal/middlewares"
	"cybershield/internal/models"
	"cybershield/internal/services"
	"cybershield/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func isProd() bool {
	return os.Getenv("APP_ENV") == "prod"
}

// setSessionCookie installs the signed session token as an HTTP-only cookie.
// Cross-site cookies need Secure + SameSite=None, so that pairing is used in
// prod; local development falls back to Lax over plain HTTP.
func setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if isProd() {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProd(),
		SameSite: sameSite,
		MaxAge:   int(utils.TokenValidity.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if isProd() {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isProd(),
		SameSite: sameSite,
		MaxAge:   -1,
	})
}

func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := a.authService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	setSessionCookie(w, token)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Login
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, err := a.authService.Login(r.Context(), &creds)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	setSessionCookie(w, token)
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Logout clears the client-held cookie. There is no server-side session
// state to tear down.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

func (a *AuthHandler) SendVerifyOtp(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := a.authService.SendVerifyOTP(r.Context(), user.ID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Verification email has been sent",
	})
}

func (a *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Otp == "" {
		utils.SendJSONError(w, "Missing details", http.StatusBadRequest)
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.SendJSONError(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	if err := a.authService.VerifyEmail(r.Context(), userID, req.Otp); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Email verified successfully",
	})
}

func (a *AuthHandler) SendResetOtp(w http.ResponseWriter, r *http.Request) {
	var req models.SendResetOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.authService.SendResetOTP(r.Context(), req.Email); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset email has been sent",
	})
}

func (a *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.authService.ResetPassword(r.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Msg("Password reset completed")
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password has been reset",
	})
}
