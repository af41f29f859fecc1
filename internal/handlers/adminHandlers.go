package handlers

import (
	"encoding/json"
	"net/http"

	"cybershield/internal/models"
	"cybershield/internal/services"
	"cybershield/internal/utils"
)

// AdminHandler exposes moderation and account administration. Every route it
// serves sits behind the auth middleware plus the admin role gate.
type AdminHandler struct {
	userService     services.UserService
	campaignService services.CampaignService
	blogService     services.BlogService
}

func NewAdminHandler(userService services.UserService, campaignService services.CampaignService, blogService services.BlogService) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		campaignService: campaignService,
		blogService:     blogService,
	}
}

func (a *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.userService.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

func (a *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := a.userService.UpdateUserRole(r.Context(), userID, req.Role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func (a *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := a.userService.DeleteUser(r.Context(), userID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted",
	})
}

func (a *AdminHandler) GetPendingCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.campaignService.GetPendingCampaigns(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"campaigns": campaigns,
	})
}

func (a *AdminHandler) ApproveCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	campaign, err := a.campaignService.SetCampaignStatus(r.Context(), id, models.CampaignStatusActive)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"campaign": campaign,
	})
}

func (a *AdminHandler) UpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	campaign, err := a.campaignService.SetCampaignStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"campaign": campaign,
	})
}

func (a *AdminHandler) GetPendingBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := a.blogService.GetPendingBlogs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	})
}

func (a *AdminHandler) ApproveBlog(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	blog, err := a.blogService.SetBlogStatus(r.Context(), id, models.BlogStatusApproved)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

func (a *AdminHandler) UpdateBlogStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	blog, err := a.blogService.SetBlogStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}
