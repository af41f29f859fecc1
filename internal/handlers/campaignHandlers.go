package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cybershield/internal/models"
	"cybershield/internal/services"
	"cybershield/internal/utils"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formValuePtr returns a pointer to a non-empty form value, nil otherwise,
// matching the partial-update semantics of the JSON payloads.
func formValuePtr(r *http.Request, field string) *string {
	if v := r.FormValue(field); v != "" {
		return &v
	}
	return nil
}

func (h *CampaignHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.GetCampaigns(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"campaigns": campaigns,
	})
}

func (h *CampaignHandler) GetCampaignByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	campaign, err := h.campaignService.GetCampaignByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"campaign": campaign,
	})
}

// decodeCampaignInput accepts either a JSON body or a multipart form with an
// optional uploaded image; an uploaded file wins over an imageUrl field.
func decodeCampaignInput(r *http.Request) (services.CreateCampaignInput, error) {
	var input services.CreateCampaignInput

	if !isMultipart(r) {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	input.Title = r.FormValue("title")
	input.Description = r.FormValue("description")
	input.StartTime = r.FormValue("startTime")
	input.EndTime = r.FormValue("endTime")
	input.ImageURL = r.FormValue("imageUrl")

	imageURL, err := utils.SaveUploadedImage(r, "image")
	if err != nil && !errors.Is(err, utils.ErrNoUpload) {
		return input, err
	}
	if err == nil {
		input.ImageURL = imageURL
	}
	return input, nil
}

func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	input, err := decodeCampaignInput(r)
	if err != nil {
		utils.SendJSONError(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	campaign, err := h.campaignService.CreateCampaign(r.Context(), user, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"campaign": campaign,
	})
}

func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var update models.CampaignUpdate
	if isMultipart(r) {
		update.Title = formValuePtr(r, "title")
		update.Description = formValuePtr(r, "description")
		update.StartTime = formValuePtr(r, "startTime")
		update.EndTime = formValuePtr(r, "endTime")
		update.Status = formValuePtr(r, "status")
		update.ImageURL = formValuePtr(r, "imageUrl")

		imageURL, err := utils.SaveUploadedImage(r, "image")
		if err != nil && !errors.Is(err, utils.ErrNoUpload) {
			utils.SendJSONError(w, "Invalid upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err == nil {
			update.ImageURL = &imageURL
		}
	} else if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(r.Context(), user, id, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"campaign": campaign,
	})
}

func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.campaignService.DeleteCampaign(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Campaign deleted",
	})
}
